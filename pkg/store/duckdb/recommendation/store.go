package recommendation

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
)

type Store interface {
	// Replace swaps the audit's entire recommendation set. When the context
	// carries a transaction (duckdb.WithTransaction) the delete and inserts
	// run inside it, so a failure leaves the prior set intact.
	Replace(ctx context.Context, auditID string, recs []domain.Recommendation) error
	ListByAudit(ctx context.Context, auditID string) ([]domain.Recommendation, error)
	UpdateStatus(ctx context.Context, id string, status domain.RecommendationStatus) error
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

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

func (s *defaultStore) runner(ctx context.Context) execer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *defaultStore) Replace(ctx context.Context, auditID string, recs []domain.Recommendation) error {
	run := s.runner(ctx)

	_, err := run.ExecContext(ctx, "DELETE FROM recommendations WHERE audit_id = ?", auditID)
	if err != nil {
		return fmt.Errorf("delete recommendations: %w", err)
	}

	if len(recs) == 0 {
		return nil
	}

	stmt, err := run.PrepareContext(ctx, `
		INSERT INTO recommendations (id, audit_id, section_id, question_id,
			title, description, action_required, priority, category, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare recommendation statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		sectionID := sql.NullString{String: rec.SectionID, Valid: rec.SectionID != ""}
		questionID := sql.NullString{String: rec.QuestionID, Valid: rec.QuestionID != ""}
		_, err = stmt.ExecContext(ctx,
			rec.ID, auditID, sectionID, questionID,
			rec.Title, rec.Description, rec.ActionRequired,
			string(rec.Priority), string(rec.Category), string(rec.Status))
		if err != nil {
			return fmt.Errorf("insert recommendation: %w", err)
		}
	}
	return nil
}

// ListByAudit returns the audit's recommendations, most urgent priority
// first, created_at breaking ties.
func (s *defaultStore) ListByAudit(ctx context.Context, auditID string) ([]domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, audit_id, section_id, question_id, title, description,
			action_required, priority, category, status, created_at
		FROM recommendations
		WHERE audit_id = ?
		ORDER BY created_at`, auditID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer rows.Close()

	recs := make([]domain.Recommendation, 0)
	for rows.Next() {
		var rec domain.Recommendation
		var sectionID, questionID, description, action sql.NullString
		var priority, category, status string
		err := rows.Scan(&rec.ID, &rec.AuditID, &sectionID, &questionID, &rec.Title,
			&description, &action, &priority, &category, &status, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.SectionID = sectionID.String
		rec.QuestionID = questionID.String
		rec.Description = description.String
		rec.ActionRequired = action.String
		rec.Priority = domain.Priority(priority)
		rec.Category = domain.Category(category)
		rec.Status = domain.RecommendationStatus(status)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs, nil
}

func (s *defaultStore) UpdateStatus(ctx context.Context, id string, status domain.RecommendationStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE recommendations SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("update recommendation status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}
