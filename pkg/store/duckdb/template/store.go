package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

type Store interface {
	Create(ctx context.Context, t domain.Template) error
	Get(ctx context.Context, id string) (*domain.Template, error)
	GetByCode(ctx context.Context, code string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
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

// Create persists a template with its sections and questions as one
// transaction.
func (s *defaultStore) Create(ctx context.Context, t domain.Template) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO templates (id, name, code, description, standard, version, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Code, t.Description, t.Standard, t.Version, t.Active,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	sectionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (id, template_id, name, code, description, ord)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare section statement: %w", err)
	}
	defer sectionStmt.Close()

	questionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (id, section_id, code, text, description, question_type,
			choices, is_required, ord, weight, max_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare question statement: %w", err)
	}
	defer questionStmt.Close()

	for _, section := range t.Sections {
		_, err = sectionStmt.ExecContext(ctx,
			section.ID, t.ID, section.Name, section.Code, section.Description, section.Order)
		if err != nil {
			return fmt.Errorf("insert section %s: %w", section.Code, err)
		}

		for _, q := range section.Questions {
			choices, err := json.Marshal(q.Choices)
			if err != nil {
				return fmt.Errorf("marshal choices: %w", err)
			}
			_, err = questionStmt.ExecContext(ctx,
				q.ID, section.ID, q.Code, q.Text, q.Description, string(q.Type),
				string(choices), q.Required, q.Order, q.Weight, q.MaxScore)
			if err != nil {
				return fmt.Errorf("insert question %s: %w", q.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit template: %w", err)
	}
	return nil
}

func (s *defaultStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	return s.get(ctx, "id = ?", id)
}

func (s *defaultStore) GetByCode(ctx context.Context, code string) (*domain.Template, error) {
	return s.get(ctx, "code = ?", code)
}

func (s *defaultStore) get(ctx context.Context, where string, arg any) (*domain.Template, error) {
	query := fmt.Sprintf(`
		SELECT id, name, code, description, standard, version, is_active, created_at
		FROM templates WHERE %s`, where)

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("query template: %w", err)
	}

	sections, err := s.loadSections(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Sections = sections
	return t, nil
}

func (s *defaultStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, code, description, standard, version, is_active, created_at
		FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]domain.Template, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		sections, err := s.loadSections(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Sections = sections
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

func (s *defaultStore) loadSections(ctx context.Context, templateID string) ([]domain.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, template_id, name, code, description, ord
		FROM sections WHERE template_id = ? ORDER BY ord`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	sections := make([]domain.Section, 0)
	for rows.Next() {
		var sec domain.Section
		var description sql.NullString
		if err := rows.Scan(&sec.ID, &sec.TemplateID, &sec.Name, &sec.Code, &description, &sec.Order); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sec.Description = description.String
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sections {
		questions, err := s.loadQuestions(ctx, sections[i].ID)
		if err != nil {
			return nil, err
		}
		sections[i].Questions = questions
	}
	return sections, nil
}

func (s *defaultStore) loadQuestions(ctx context.Context, sectionID string) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, section_id, code, text, description, question_type,
			choices, is_required, ord, weight, max_score
		FROM questions WHERE section_id = ? ORDER BY ord`, sectionID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var q domain.Question
		var description, choicesRaw sql.NullString
		var qType string
		err := rows.Scan(&q.ID, &q.SectionID, &q.Code, &q.Text, &description, &qType,
			&choicesRaw, &q.Required, &q.Order, &q.Weight, &q.MaxScore)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Description = description.String
		q.Type = domain.QuestionType(qType)
		if choicesRaw.Valid && choicesRaw.String != "" {
			// Tolerate malformed choices: the scorer degrades them to zero.
			_ = json.Unmarshal([]byte(choicesRaw.String), &q.Choices)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var t domain.Template
	var description, standard, version sql.NullString
	err := row.Scan(&t.ID, &t.Name, &t.Code, &description, &standard, &version, &t.Active, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.Standard = standard.String
	t.Version = version.String
	return &t, nil
}
