package stats

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/scoring"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
	templatestore "github.com/de-tools/audit-atlas/pkg/store/duckdb/template"
)

const (
	defaultTrendSize = 10
	recentSize       = 5

	minComparisonAudits = 2
	maxComparisonAudits = 5
)

// Reporter provides the read-only reporting views: organization-wide
// statistics and pairwise audit comparison.
type Reporter interface {
	Statistics(ctx context.Context, organizationID string) (*domain.Statistics, error)
	Compare(ctx context.Context, auditIDs []string) (*domain.AuditComparison, error)
}

type defaultReporter struct {
	audits    auditstore.Store
	templates templatestore.Store
	trendSize int
}

func NewReporter(audits auditstore.Store, templates templatestore.Store, trendSize int) Reporter {
	if trendSize <= 0 {
		trendSize = defaultTrendSize
	}
	return &defaultReporter{
		audits:    audits,
		templates: templates,
		trendSize: trendSize,
	}
}

func (r *defaultReporter) Statistics(ctx context.Context, organizationID string) (*domain.Statistics, error) {
	audits, err := r.audits.List(ctx, auditstore.Filters{OrganizationID: organizationID})
	if err != nil {
		return nil, err
	}

	stats := domain.Statistics{
		TotalAudits:    len(audits),
		AuditsByStatus: map[domain.AuditStatus]int{},
		AuditsByLevel:  map[domain.LevelType]int{},
	}

	var completedScoreSum float64
	completed := make([]domain.Audit, 0)
	for _, a := range audits {
		stats.AuditsByStatus[a.Status]++
		stats.AuditsByLevel[a.Level.Type]++

		switch a.Status {
		case domain.AuditStatusCompleted:
			stats.CompletedAudits++
			completedScoreSum += a.Score
			completed = append(completed, a)
		case domain.AuditStatusInProgress:
			stats.InProgressAudits++
		case domain.AuditStatusDraft:
			stats.DraftAudits++
		}
	}
	if stats.CompletedAudits > 0 {
		stats.AverageScore = scoring.Round2(completedScoreSum / float64(stats.CompletedAudits))
	}

	// List comes back newest first.
	if len(audits) > recentSize {
		stats.RecentAudits = audits[:recentSize]
	} else {
		stats.RecentAudits = audits
	}

	stats.ScoreTrend = trend(completed, r.trendSize)
	return &stats, nil
}

// trend selects the last n completed audits and orders them chronologically
// ascending for charting.
func trend(completed []domain.Audit, n int) []domain.TrendPoint {
	sort.Slice(completed, func(i, j int) bool {
		return completedTime(completed[i]).After(completedTime(completed[j]))
	})
	if len(completed) > n {
		completed = completed[:n]
	}

	points := make([]domain.TrendPoint, 0, len(completed))
	for i := len(completed) - 1; i >= 0; i-- {
		a := completed[i]
		points = append(points, domain.TrendPoint{
			Date:  completedTime(a),
			Score: a.Score,
			Name:  a.Name,
		})
	}
	return points
}

func completedTime(a domain.Audit) time.Time {
	if a.CompletedAt != nil {
		return *a.CompletedAt
	}
	return a.CreatedAt
}

// Compare builds a side-by-side per-section view of 2-5 completed audits
// sharing one template. Anything else is a caller validation error.
func (r *defaultReporter) Compare(ctx context.Context, auditIDs []string) (*domain.AuditComparison, error) {
	if len(auditIDs) < minComparisonAudits || len(auditIDs) > maxComparisonAudits {
		return nil, domain.ErrInvalidComparison
	}

	audits := make([]domain.Audit, 0, len(auditIDs))
	for _, id := range auditIDs {
		a, err := r.audits.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if a.Status != domain.AuditStatusCompleted {
			return nil, domain.ErrInvalidComparison
		}
		audits = append(audits, *a)
	}

	templateID := audits[0].TemplateID
	for _, a := range audits[1:] {
		if a.TemplateID != templateID {
			return nil, domain.ErrInvalidComparison
		}
	}

	t, err := r.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	answersByAudit := make(map[string]map[string]domain.Answer, len(audits))
	for _, a := range audits {
		answers, err := r.audits.ListAnswers(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		answersByAudit[a.ID] = scoring.ByQuestion(answers)
	}

	sections := make([]domain.SectionComparison, 0, len(t.Sections))
	for _, s := range t.Sections {
		sc := domain.SectionComparison{
			SectionID:   s.ID,
			SectionName: s.Name,
			SectionCode: s.Code,
			Scores:      make(map[string]float64, len(audits)),
		}
		for _, a := range audits {
			sc.Scores[a.ID] = scoring.SectionScore(s, answersByAudit[a.ID])
		}
		sections = append(sections, sc)
	}

	comparison := domain.AuditComparison{
		Audits:   audits,
		Sections: sections,
	}

	var sum float64
	best, worst := audits[0], audits[0]
	for _, a := range audits {
		sum += a.Score
		if a.Score > best.Score {
			best = a
		}
		if a.Score < worst.Score {
			worst = a
		}
	}
	comparison.AverageScore = scoring.Round2(sum / float64(len(audits)))
	comparison.Best = domain.AuditScoreRef{AuditID: best.ID, Name: best.Name, Score: best.Score}
	comparison.Worst = domain.AuditScoreRef{AuditID: worst.ID, Name: worst.Name, Score: worst.Score}
	return &comparison, nil
}
