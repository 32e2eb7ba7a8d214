package store

import (
	"database/sql"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

// AnswerRow is the flattened persistence shape of a domain.Answer: the value
// union becomes a kind column plus one populated value column.
type AnswerRow struct {
	ID          string
	AuditID     string
	QuestionID  string
	Kind        string
	ValueBool   sql.NullBool
	ValueScale  sql.NullInt32
	ValueChoice sql.NullString
	ValueText   sql.NullString
	Comments    sql.NullString
	AnsweredBy  sql.NullString
	AnsweredAt  sql.NullTime
	Score       float64
	MaxScore    float64
}

func NewAnswerRow(a domain.Answer) AnswerRow {
	row := AnswerRow{
		ID:         a.ID,
		AuditID:    a.AuditID,
		QuestionID: a.QuestionID,
		Comments:   sql.NullString{String: a.Comments, Valid: a.Comments != ""},
		AnsweredBy: sql.NullString{String: a.AnsweredBy, Valid: a.AnsweredBy != ""},
		AnsweredAt: sql.NullTime{Time: a.AnsweredAt, Valid: !a.AnsweredAt.IsZero()},
		Score:      a.Score,
		MaxScore:   a.MaxScore,
	}
	if a.Value == nil {
		return row
	}
	row.Kind = string(a.Value.Kind())
	switch v := a.Value.(type) {
	case domain.BoolValue:
		row.ValueBool = sql.NullBool{Bool: v.Value, Valid: true}
	case domain.ScaleValue:
		row.ValueScale = sql.NullInt32{Int32: int32(v.Value), Valid: true}
	case domain.ChoiceValue:
		row.ValueChoice = sql.NullString{String: v.Value, Valid: true}
	case domain.TextValue:
		row.ValueText = sql.NullString{String: v.Value, Valid: true}
	}
	return row
}

// Domain rebuilds the answer union from the row. Rows with an unknown kind
// or a missing value column come back with a nil Value, which the scoring
// engine treats as zero points.
func (r AnswerRow) Domain() domain.Answer {
	a := domain.Answer{
		ID:         r.ID,
		AuditID:    r.AuditID,
		QuestionID: r.QuestionID,
		Comments:   r.Comments.String,
		AnsweredBy: r.AnsweredBy.String,
		Score:      r.Score,
		MaxScore:   r.MaxScore,
	}
	if r.AnsweredAt.Valid {
		a.AnsweredAt = r.AnsweredAt.Time
	}
	switch domain.AnswerKind(r.Kind) {
	case domain.AnswerKindBool:
		if r.ValueBool.Valid {
			a.Value = domain.BoolValue{Value: r.ValueBool.Bool}
		}
	case domain.AnswerKindScale:
		if r.ValueScale.Valid {
			a.Value = domain.ScaleValue{Value: int(r.ValueScale.Int32)}
		}
	case domain.AnswerKindChoice:
		if r.ValueChoice.Valid {
			a.Value = domain.ChoiceValue{Value: r.ValueChoice.String}
		}
	case domain.AnswerKindText:
		if r.ValueText.Valid {
			a.Value = domain.TextValue{Value: r.ValueText.String}
		}
	}
	return a
}
