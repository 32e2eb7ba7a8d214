package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/models/store"
)

// Filters narrows audit listings. Zero values mean "no filter".
type Filters struct {
	OrganizationID string
	Status         domain.AuditStatus
	TemplateID     string
	LevelType      domain.LevelType
}

type Store interface {
	Create(ctx context.Context, a domain.Audit) error
	Get(ctx context.Context, id string) (*domain.Audit, error)
	List(ctx context.Context, f Filters) ([]domain.Audit, error)
	CountByOrganization(ctx context.Context, organizationID string) (int, error)
	UpdateProgress(ctx context.Context, id string, answered int, score float64) error
	UpdateStatus(ctx context.Context, id string, status domain.AuditStatus, completedAt *time.Time) error

	UpsertAnswer(ctx context.Context, a domain.Answer) error
	ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Create(ctx context.Context, a domain.Audit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audits (id, code, name, description, template_id, organization_id,
			level_type, level_unit_id, level_unit_name, status, total_questions,
			answered_questions, score, start_date, end_date, created_by, assigned_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Code, a.Name, a.Description, a.TemplateID, a.OrganizationID,
		string(a.Level.Type), a.Level.UnitID, a.Level.UnitName, string(a.Status),
		a.TotalQuestions, a.AnsweredQuestions, a.Score, a.StartDate, a.EndDate,
		a.CreatedBy, a.AssignedTo,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

const auditColumns = `id, code, name, description, template_id, organization_id,
	level_type, level_unit_id, level_unit_name, status, total_questions,
	answered_questions, score, start_date, end_date, completed_at,
	created_by, assigned_to, created_at`

func (s *defaultStore) Get(ctx context.Context, id string) (*domain.Audit, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM audits WHERE id = ?", auditColumns), id)
	a, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAuditNotFound
		}
		return nil, fmt.Errorf("query audit: %w", err)
	}
	return a, nil
}

func (s *defaultStore) List(ctx context.Context, f Filters) ([]domain.Audit, error) {
	query := fmt.Sprintf("SELECT %s FROM audits WHERE 1=1", auditColumns)
	args := make([]any, 0, 4)

	if f.OrganizationID != "" {
		query += " AND organization_id = ?"
		args = append(args, f.OrganizationID)
	}
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	if f.TemplateID != "" {
		query += " AND template_id = ?"
		args = append(args, f.TemplateID)
	}
	if f.LevelType != "" {
		query += " AND level_type = ?"
		args = append(args, string(f.LevelType))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	defer rows.Close()

	audits := make([]domain.Audit, 0)
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, *a)
	}
	return audits, rows.Err()
}

func (s *defaultStore) CountByOrganization(ctx context.Context, organizationID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM audits WHERE organization_id = ?", organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count audits: %w", err)
	}
	return count, nil
}

func (s *defaultStore) UpdateProgress(ctx context.Context, id string, answered int, score float64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE audits SET answered_questions = ?, score = ? WHERE id = ?",
		answered, score, id)
	if err != nil {
		return fmt.Errorf("update audit progress: %w", err)
	}
	return ensureAffected(res)
}

func (s *defaultStore) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.AuditStatus,
	completedAt *time.Time,
) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE audits SET status = ?, completed_at = ? WHERE id = ?",
		string(status), completedAt, id)
	if err != nil {
		return fmt.Errorf("update audit status: %w", err)
	}
	return ensureAffected(res)
}

// UpsertAnswer inserts or replaces the answer for (audit, question). The
// primary key makes a resubmission an update of the first answer, never a
// duplicate.
func (s *defaultStore) UpsertAnswer(ctx context.Context, a domain.Answer) error {
	row := store.NewAnswerRow(a)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, audit_id, question_id, kind, value_bool, value_scale,
			value_choice, value_text, comments, answered_by, answered_at, score, max_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (audit_id, question_id) DO UPDATE SET
			kind = excluded.kind,
			value_bool = excluded.value_bool,
			value_scale = excluded.value_scale,
			value_choice = excluded.value_choice,
			value_text = excluded.value_text,
			comments = excluded.comments,
			answered_by = excluded.answered_by,
			answered_at = excluded.answered_at,
			score = excluded.score,
			max_score = excluded.max_score`,
		row.ID, row.AuditID, row.QuestionID, row.Kind, row.ValueBool, row.ValueScale,
		row.ValueChoice, row.ValueText, row.Comments, row.AnsweredBy, row.AnsweredAt,
		row.Score, row.MaxScore,
	)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

func (s *defaultStore) ListAnswers(ctx context.Context, auditID string) ([]domain.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, audit_id, question_id, kind, value_bool, value_scale,
			value_choice, value_text, comments, answered_by, answered_at, score, max_score
		FROM answers WHERE audit_id = ? ORDER BY answered_at`, auditID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	answers := make([]domain.Answer, 0)
	for rows.Next() {
		var r store.AnswerRow
		err := rows.Scan(&r.ID, &r.AuditID, &r.QuestionID, &r.Kind, &r.ValueBool,
			&r.ValueScale, &r.ValueChoice, &r.ValueText, &r.Comments, &r.AnsweredBy,
			&r.AnsweredAt, &r.Score, &r.MaxScore)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, r.Domain())
	}
	return answers, rows.Err()
}

func scanAudit(row interface{ Scan(...any) error }) (*domain.Audit, error) {
	var a domain.Audit
	var description, levelName, createdBy, assignedTo sql.NullString
	var levelType, status string
	var startDate, endDate, completedAt sql.NullTime

	err := row.Scan(&a.ID, &a.Code, &a.Name, &description, &a.TemplateID, &a.OrganizationID,
		&levelType, &a.Level.UnitID, &levelName, &status, &a.TotalQuestions,
		&a.AnsweredQuestions, &a.Score, &startDate, &endDate, &completedAt,
		&createdBy, &assignedTo, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Description = description.String
	a.Level.Type = domain.LevelType(levelType)
	a.Level.UnitName = levelName.String
	a.Status = domain.AuditStatus(status)
	a.CreatedBy = createdBy.String
	a.AssignedTo = assignedTo.String
	if startDate.Valid {
		t := startDate.Time
		a.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		a.EndDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return &a, nil
}

func ensureAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrAuditNotFound
	}
	return nil
}
