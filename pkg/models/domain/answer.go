package domain

import "time"

type AnswerKind string

const (
	AnswerKindBool   AnswerKind = "boolean"
	AnswerKindScale  AnswerKind = "scale"
	AnswerKindChoice AnswerKind = "choice"
	AnswerKindText   AnswerKind = "text"
)

// AnswerValue is the tagged union of the four answer variants. Each variant
// carries only the field relevant to its kind, so there is never a question
// of which column is actually populated.
type AnswerValue interface {
	Kind() AnswerKind
}

type BoolValue struct {
	Value bool
}

func (BoolValue) Kind() AnswerKind { return AnswerKindBool }

// ScaleValue holds a 1-5 rating.
type ScaleValue struct {
	Value int
}

func (ScaleValue) Kind() AnswerKind { return AnswerKindScale }

// ChoiceValue holds the chosen label, matched against the question's
// ordered choice list at scoring time.
type ChoiceValue struct {
	Value string
}

func (ChoiceValue) Kind() AnswerKind { return AnswerKindChoice }

type TextValue struct {
	Value string
}

func (TextValue) Kind() AnswerKind { return AnswerKindText }

// Answer is one response per (audit, question) pair. MaxScore is snapshotted
// from the question at answer time so later template edits never retroactively
// change past answers.
type Answer struct {
	ID         string
	AuditID    string
	QuestionID string
	Value      AnswerValue
	Comments   string
	AnsweredBy string
	AnsweredAt time.Time

	Score    float64
	MaxScore float64
}
