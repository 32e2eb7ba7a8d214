package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/recommend"
	"github.com/de-tools/audit-atlas/pkg/services/scoring"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
	recstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/recommendation"
	templatestore "github.com/de-tools/audit-atlas/pkg/store/duckdb/template"
)

type CreateAuditRequest struct {
	Name           string
	Description    string
	TemplateID     string
	OrganizationID string
	Level          domain.Level
	CreatedBy      string
	AssignedTo     string
	StartDate      *time.Time
	EndDate        *time.Time
}

type SubmitAnswerRequest struct {
	QuestionID string
	Value      domain.AnswerValue
	Comments   string
	AnsweredBy string
}

// Manager owns the audit lifecycle: creation, answering, completion, and the
// derived artifacts (scores, recommendations, results).
type Manager interface {
	CreateAudit(ctx context.Context, req CreateAuditRequest) (*domain.Audit, error)
	GetAudit(ctx context.Context, id string) (*domain.Audit, error)
	ListAudits(ctx context.Context, f auditstore.Filters) ([]domain.Audit, error)
	StartAudit(ctx context.Context, id string) (*domain.Audit, error)
	CompleteAudit(ctx context.Context, id string) (*domain.Audit, error)

	SubmitAnswer(ctx context.Context, auditID string, req SubmitAnswerRequest) (*domain.Answer, error)
	ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error)
	RecomputeAudit(ctx context.Context, auditID string) (*domain.Progress, error)

	GetQuestions(ctx context.Context, auditID string) ([]domain.SectionQuestions, error)
	GetResults(ctx context.Context, auditID string) (*domain.AuditResults, error)

	RegenerateRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error)
	ListRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error)
	UpdateRecommendationStatus(ctx context.Context, id string, status domain.RecommendationStatus) error
}

type defaultManager struct {
	db              *sql.DB
	templates       templatestore.Store
	audits          auditstore.Store
	recommendations recstore.Store
	now             func() time.Time
}

func NewManager(
	db *sql.DB,
	templates templatestore.Store,
	audits auditstore.Store,
	recommendations recstore.Store,
) Manager {
	return &defaultManager{
		db:              db,
		templates:       templates,
		audits:          audits,
		recommendations: recommendations,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (m *defaultManager) CreateAudit(ctx context.Context, req CreateAuditRequest) (*domain.Audit, error) {
	t, err := m.templates.Get(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !t.Active {
		return nil, domain.ErrTemplateNotFound
	}

	count, err := m.audits.CountByOrganization(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	audit := domain.Audit{
		ID:             uuid.NewString(),
		Code:           fmt.Sprintf("AUD-%d-%04d", now.Year(), count+1),
		Name:           req.Name,
		Description:    req.Description,
		TemplateID:     t.ID,
		OrganizationID: req.OrganizationID,
		Level:          req.Level,
		Status:         domain.AuditStatusDraft,
		TotalQuestions: t.TotalQuestions(),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CreatedBy:      req.CreatedBy,
		AssignedTo:     req.AssignedTo,
		CreatedAt:      now,
	}
	if err := m.audits.Create(ctx, audit); err != nil {
		return nil, err
	}
	return m.audits.Get(ctx, audit.ID)
}

func (m *defaultManager) GetAudit(ctx context.Context, id string) (*domain.Audit, error) {
	return m.audits.Get(ctx, id)
}

func (m *defaultManager) ListAudits(ctx context.Context, f auditstore.Filters) ([]domain.Audit, error) {
	return m.audits.List(ctx, f)
}

func (m *defaultManager) StartAudit(ctx context.Context, id string) (*domain.Audit, error) {
	audit, err := m.audits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if audit.Status != domain.AuditStatusDraft {
		return nil, domain.ErrAuditNotStartable
	}
	if err := m.audits.UpdateStatus(ctx, id, domain.AuditStatusInProgress, nil); err != nil {
		return nil, err
	}
	return m.audits.Get(ctx, id)
}

// SubmitAnswer records or replaces the answer for one question, scores it,
// and refreshes the audit's aggregate score and progress. Draft audits are
// started implicitly on their first answer.
func (m *defaultManager) SubmitAnswer(
	ctx context.Context,
	auditID string,
	req SubmitAnswerRequest,
) (*domain.Answer, error) {
	audit, err := m.audits.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if !audit.Editable() {
		return nil, domain.ErrAuditNotEditable
	}
	if audit.Status == domain.AuditStatusDraft {
		if err := m.audits.UpdateStatus(ctx, auditID, domain.AuditStatusInProgress, nil); err != nil {
			return nil, err
		}
	}

	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	q, ok := t.QuestionByID(req.QuestionID)
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}

	answer := domain.Answer{
		ID:         uuid.NewString(),
		AuditID:    auditID,
		QuestionID: q.ID,
		Value:      req.Value,
		Comments:   req.Comments,
		AnsweredBy: req.AnsweredBy,
		AnsweredAt: m.now(),
		Score:      scoring.ScoreAnswer(q, req.Value),
		MaxScore:   q.MaxPoints(),
	}
	if err := m.audits.UpsertAnswer(ctx, answer); err != nil {
		return nil, err
	}

	if _, err := m.recompute(ctx, auditID, t); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (m *defaultManager) ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error) {
	if _, err := m.audits.Get(ctx, auditID); err != nil {
		return nil, err
	}
	return m.audits.ListAnswers(ctx, auditID)
}

func (m *defaultManager) RecomputeAudit(ctx context.Context, auditID string) (*domain.Progress, error) {
	audit, err := m.audits.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	return m.recompute(ctx, auditID, t)
}

func (m *defaultManager) recompute(ctx context.Context, auditID string, t *domain.Template) (*domain.Progress, error) {
	answers, err := m.audits.ListAnswers(ctx, auditID)
	if err != nil {
		return nil, err
	}
	progress := domain.Progress{
		Score:             scoring.AuditScore(*t, scoring.ByQuestion(answers)),
		AnsweredQuestions: len(answers),
	}
	if err := m.audits.UpdateProgress(ctx, auditID, progress.AnsweredQuestions, progress.Score); err != nil {
		return nil, err
	}
	return &progress, nil
}

// CompleteAudit finalizes the score, marks the audit completed, and generates
// its recommendation set.
func (m *defaultManager) CompleteAudit(ctx context.Context, id string) (*domain.Audit, error) {
	audit, err := m.audits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if audit.Status != domain.AuditStatusInProgress {
		return nil, domain.ErrAuditNotCompletable
	}

	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	if _, err := m.recompute(ctx, id, t); err != nil {
		return nil, err
	}

	completedAt := m.now()
	if err := m.audits.UpdateStatus(ctx, id, domain.AuditStatusCompleted, &completedAt); err != nil {
		return nil, err
	}

	if _, err := m.regenerate(ctx, id, t); err != nil {
		return nil, err
	}
	return m.audits.Get(ctx, id)
}

// RegenerateRecommendations recomputes the recommendation set from the
// current answers and replaces the stored set. Manual status edits on the
// prior set do not survive.
func (m *defaultManager) RegenerateRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error) {
	audit, err := m.audits.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	return m.regenerate(ctx, auditID, t)
}

// regenerate runs the delete-then-insert replacement as one transaction:
// a failure must never leave an audit with an empty set that reads as
// "all clear".
func (m *defaultManager) regenerate(ctx context.Context, auditID string, t *domain.Template) ([]domain.Recommendation, error) {
	answers, err := m.audits.ListAnswers(ctx, auditID)
	if err != nil {
		return nil, err
	}
	recs := recommend.Generate(auditID, *t, scoring.ByQuestion(answers))

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin recommendation replacement: %w", err)
	}
	txCtx := duckdb.WithTransaction(ctx, tx)

	if err := m.recommendations.Replace(txCtx, auditID, recs); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zerolog.Ctx(ctx).Error().Err(rbErr).Msg("rollback failed after recommendation replacement error")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit recommendation replacement: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("audit_id", auditID).
		Int("recommendations", len(recs)).
		Msg("recommendations regenerated")
	return recs, nil
}

func (m *defaultManager) ListRecommendations(ctx context.Context, auditID string) ([]domain.Recommendation, error) {
	if _, err := m.audits.Get(ctx, auditID); err != nil {
		return nil, err
	}
	return m.recommendations.ListByAudit(ctx, auditID)
}

func (m *defaultManager) UpdateRecommendationStatus(
	ctx context.Context,
	id string,
	status domain.RecommendationStatus,
) error {
	if !domain.ValidRecommendationStatus(status) {
		return domain.ErrInvalidRecommendationStatus
	}
	return m.recommendations.UpdateStatus(ctx, id, status)
}

func (m *defaultManager) GetQuestions(ctx context.Context, auditID string) ([]domain.SectionQuestions, error) {
	audit, err := m.audits.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	answers, err := m.audits.ListAnswers(ctx, auditID)
	if err != nil {
		return nil, err
	}
	byQuestion := scoring.ByQuestion(answers)

	result := make([]domain.SectionQuestions, 0, len(t.Sections))
	for _, s := range t.Sections {
		sq := domain.SectionQuestions{
			Section:  s,
			Answered: make(map[string]bool, len(s.Questions)),
			Answers:  make(map[string]domain.Answer),
		}
		for _, q := range s.Questions {
			a, ok := byQuestion[q.ID]
			sq.Answered[q.ID] = ok
			if ok {
				sq.Answers[q.ID] = a
			}
		}
		result = append(result, sq)
	}
	return result, nil
}

func (m *defaultManager) GetResults(ctx context.Context, auditID string) (*domain.AuditResults, error) {
	audit, err := m.audits.Get(ctx, auditID)
	if err != nil {
		return nil, err
	}
	t, err := m.templates.Get(ctx, audit.TemplateID)
	if err != nil {
		return nil, err
	}
	answers, err := m.audits.ListAnswers(ctx, auditID)
	if err != nil {
		return nil, err
	}
	recs, err := m.recommendations.ListByAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	byQuestion := scoring.ByQuestion(answers)
	return &domain.AuditResults{
		Audit:             *audit,
		OverallScore:      scoring.AuditScore(*t, byQuestion),
		TotalQuestions:    audit.TotalQuestions,
		AnsweredQuestions: len(answers),
		SectionScores:     scoring.SectionScores(*t, byQuestion),
		AnswersSummary:    summarize(answers, audit.TotalQuestions),
		Recommendations:   recs,
	}, nil
}

func summarize(answers []domain.Answer, totalQuestions int) domain.AnswersSummary {
	summary := domain.AnswersSummary{
		TotalAnswered:  len(answers),
		TotalQuestions: totalQuestions,
	}
	scaleSum, scaleCount := 0, 0
	for _, a := range answers {
		switch v := a.Value.(type) {
		case domain.BoolValue:
			if v.Value {
				summary.Yes++
			} else {
				summary.No++
			}
		case domain.ScaleValue:
			scaleSum += v.Value
			scaleCount++
		}
	}
	if scaleCount > 0 {
		summary.ScaleAvg = scoring.Round2(float64(scaleSum) / float64(scaleCount))
	}
	return summary
}
