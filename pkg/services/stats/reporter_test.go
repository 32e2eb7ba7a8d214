package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
)

type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) Create(ctx context.Context, a domain.Audit) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAuditStore) Get(ctx context.Context, id string) (*domain.Audit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Audit), args.Error(1)
}

func (m *mockAuditStore) List(ctx context.Context, f auditstore.Filters) ([]domain.Audit, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Audit), args.Error(1)
}

func (m *mockAuditStore) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	args := m.Called(ctx, organizationID)
	return args.Int(0), args.Error(1)
}

func (m *mockAuditStore) UpdateProgress(ctx context.Context, id string, answered int, score float64) error {
	args := m.Called(ctx, id, answered, score)
	return args.Error(0)
}

func (m *mockAuditStore) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.AuditStatus,
	completedAt *time.Time,
) error {
	args := m.Called(ctx, id, status, completedAt)
	return args.Error(0)
}

func (m *mockAuditStore) UpsertAnswer(ctx context.Context, a domain.Answer) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAuditStore) ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error) {
	args := m.Called(ctx, auditID)
	return args.Get(0).([]domain.Answer), args.Error(1)
}

type mockTemplateStore struct {
	mock.Mock
}

func (m *mockTemplateStore) Create(ctx context.Context, t domain.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTemplateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *mockTemplateStore) GetByCode(ctx context.Context, code string) (*domain.Template, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Template), args.Error(1)
}

func (m *mockTemplateStore) List(ctx context.Context) ([]domain.Template, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Template), args.Error(1)
}

func completedAudit(id string, score float64, completedAt time.Time) domain.Audit {
	return domain.Audit{
		ID:          id,
		Name:        id,
		TemplateID:  "t1",
		Status:      domain.AuditStatusCompleted,
		Score:       score,
		CompletedAt: &completedAt,
	}
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	day := func(n int) time.Time {
		return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC)
	}

	t.Run("buckets by status and level, averages completed only", func(t *testing.T) {
		audits := new(mockAuditStore)
		audits.On("List", ctx, auditstore.Filters{OrganizationID: "org1"}).Return([]domain.Audit{
			{ID: "a1", Status: domain.AuditStatusCompleted, Score: 80, Level: domain.Level{Type: domain.LevelCompany}},
			{ID: "a2", Status: domain.AuditStatusCompleted, Score: 60, Level: domain.Level{Type: domain.LevelDepartment}},
			{ID: "a3", Status: domain.AuditStatusInProgress, Score: 30, Level: domain.Level{Type: domain.LevelDepartment}},
			{ID: "a4", Status: domain.AuditStatusDraft, Level: domain.Level{Type: domain.LevelTeam}},
		}, nil)

		r := NewReporter(audits, new(mockTemplateStore), 0)
		stats, err := r.Statistics(ctx, "org1")
		require.NoError(t, err)

		assert.Equal(t, 4, stats.TotalAudits)
		assert.Equal(t, 2, stats.CompletedAudits)
		assert.Equal(t, 1, stats.InProgressAudits)
		assert.Equal(t, 1, stats.DraftAudits)
		// draft/in_progress scores never dilute the average
		assert.Equal(t, 70.0, stats.AverageScore)

		assert.Equal(t, 2, stats.AuditsByLevel[domain.LevelDepartment])
		assert.Equal(t, 1, stats.AuditsByLevel[domain.LevelCompany])
		assert.Equal(t, 1, stats.AuditsByLevel[domain.LevelTeam])

		total := 0
		for _, n := range stats.AuditsByLevel {
			total += n
		}
		assert.Equal(t, stats.TotalAudits, total, "level buckets must partition the audits")
	})

	t.Run("trend is chronological ascending and truncated to the window", func(t *testing.T) {
		audits := new(mockAuditStore)
		audits.On("List", ctx, mock.Anything).Return([]domain.Audit{
			completedAudit("a3", 70, day(3)),
			completedAudit("a1", 50, day(1)),
			completedAudit("a4", 80, day(4)),
			completedAudit("a2", 60, day(2)),
		}, nil)

		r := NewReporter(audits, new(mockTemplateStore), 3)
		stats, err := r.Statistics(ctx, "org1")
		require.NoError(t, err)

		require.Len(t, stats.ScoreTrend, 3)
		// oldest completed audit falls out of a 3-point window
		assert.Equal(t, 60.0, stats.ScoreTrend[0].Score)
		assert.Equal(t, 70.0, stats.ScoreTrend[1].Score)
		assert.Equal(t, 80.0, stats.ScoreTrend[2].Score)
		assert.True(t, stats.ScoreTrend[0].Date.Before(stats.ScoreTrend[1].Date))
	})

	t.Run("recent audits keep the store's newest-first order, capped at five", func(t *testing.T) {
		list := make([]domain.Audit, 0, 7)
		for i := 0; i < 7; i++ {
			list = append(list, domain.Audit{ID: string(rune('a' + i)), Status: domain.AuditStatusDraft})
		}
		audits := new(mockAuditStore)
		audits.On("List", ctx, mock.Anything).Return(list, nil)

		r := NewReporter(audits, new(mockTemplateStore), 0)
		stats, err := r.Statistics(ctx, "org1")
		require.NoError(t, err)

		require.Len(t, stats.RecentAudits, 5)
		assert.Equal(t, "a", stats.RecentAudits[0].ID)
	})
}

func TestCompare(t *testing.T) {
	ctx := context.Background()

	tmpl := &domain.Template{
		ID:     "t1",
		Active: true,
		Sections: []domain.Section{
			{
				ID:   "s1",
				Name: "Access Control",
				Questions: []domain.Question{
					{ID: "q1", Type: domain.QuestionTypeYesNo, MaxScore: 10, Weight: 1},
				},
			},
		},
	}

	t.Run("builds per-section scores keyed by audit", func(t *testing.T) {
		now := time.Now()
		a1 := completedAudit("a1", 100, now)
		a2 := completedAudit("a2", 0, now)

		audits := new(mockAuditStore)
		audits.On("Get", ctx, "a1").Return(&a1, nil)
		audits.On("Get", ctx, "a2").Return(&a2, nil)
		audits.On("ListAnswers", ctx, "a1").Return([]domain.Answer{
			{QuestionID: "q1", Value: domain.BoolValue{Value: true}},
		}, nil)
		audits.On("ListAnswers", ctx, "a2").Return([]domain.Answer{
			{QuestionID: "q1", Value: domain.BoolValue{Value: false}},
		}, nil)
		templates := new(mockTemplateStore)
		templates.On("Get", ctx, "t1").Return(tmpl, nil)

		r := NewReporter(audits, templates, 0)
		cmp, err := r.Compare(ctx, []string{"a1", "a2"})
		require.NoError(t, err)

		require.Len(t, cmp.Sections, 1)
		assert.Equal(t, 100.0, cmp.Sections[0].Scores["a1"])
		assert.Equal(t, 0.0, cmp.Sections[0].Scores["a2"])
		assert.Equal(t, 50.0, cmp.AverageScore)
		assert.Equal(t, "a1", cmp.Best.AuditID)
		assert.Equal(t, "a2", cmp.Worst.AuditID)
	})

	t.Run("rejects fewer than two or more than five audits", func(t *testing.T) {
		r := NewReporter(new(mockAuditStore), new(mockTemplateStore), 0)

		_, err := r.Compare(ctx, []string{"a1"})
		assert.ErrorIs(t, err, domain.ErrInvalidComparison)

		_, err = r.Compare(ctx, []string{"a1", "a2", "a3", "a4", "a5", "a6"})
		assert.ErrorIs(t, err, domain.ErrInvalidComparison)
	})

	t.Run("rejects audits that are not completed", func(t *testing.T) {
		audits := new(mockAuditStore)
		audits.On("Get", ctx, "a1").Return(&domain.Audit{ID: "a1", Status: domain.AuditStatusInProgress}, nil)

		r := NewReporter(audits, new(mockTemplateStore), 0)
		_, err := r.Compare(ctx, []string{"a1", "a2"})
		assert.ErrorIs(t, err, domain.ErrInvalidComparison)
	})

	t.Run("rejects audits from different templates", func(t *testing.T) {
		now := time.Now()
		a1 := completedAudit("a1", 50, now)
		a2 := completedAudit("a2", 50, now)
		a2.TemplateID = "t2"

		audits := new(mockAuditStore)
		audits.On("Get", ctx, "a1").Return(&a1, nil)
		audits.On("Get", ctx, "a2").Return(&a2, nil)

		r := NewReporter(audits, new(mockTemplateStore), 0)
		_, err := r.Compare(ctx, []string{"a1", "a2"})
		assert.ErrorIs(t, err, domain.ErrInvalidComparison)
	})
}
