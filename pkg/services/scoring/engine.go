package scoring

import (
	"math"
	"strings"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

const scaleMax = 5

// ScoreAnswer converts one answer value into earned points for its question,
// in the range [0, MaxScore x Weight]. It never fails: a nil value, a value
// kind that does not match the question type, a malformed choice list, or an
// unknown question type all score zero so that a single bad answer can never
// block scoring the rest of the audit.
func ScoreAnswer(q domain.Question, v domain.AnswerValue) float64 {
	if v == nil {
		return 0
	}
	max := q.MaxPoints()

	switch q.Type {
	case domain.QuestionTypeYesNo:
		if b, ok := v.(domain.BoolValue); ok && b.Value {
			return max
		}
	case domain.QuestionTypeScale:
		if s, ok := v.(domain.ScaleValue); ok && s.Value >= 1 && s.Value <= scaleMax {
			return float64(s.Value) / scaleMax * max
		}
	case domain.QuestionTypeMultipleChoice:
		c, ok := v.(domain.ChoiceValue)
		if !ok || len(q.Choices) == 0 {
			return 0
		}
		if c.Value == q.Choices[0] {
			return max
		}
		if len(q.Choices) > 1 && c.Value == q.Choices[1] {
			return max * 0.5
		}
	case domain.QuestionTypeText:
		if t, ok := v.(domain.TextValue); ok && strings.TrimSpace(t.Value) != "" {
			return max
		}
	}
	return 0
}

// Percentage normalizes earned points against possible points on a 0-100
// scale rounded to two decimals. A zero (or degenerate negative) denominator
// yields 0 rather than an error: an empty scope is defined as 0%.
func Percentage(earned, possible float64) float64 {
	if possible <= 0 {
		return 0
	}
	return round2(earned / possible * 100)
}

// sectionPoints sums earned and possible points over a section. Every
// question counts toward possible, answered or not, so partial audits show
// a correspondingly partial score.
func sectionPoints(s domain.Section, answers map[string]domain.Answer) (earned, possible float64) {
	for _, q := range s.Questions {
		possible += q.MaxPoints()
		if a, ok := answers[q.ID]; ok {
			earned += ScoreAnswer(q, a.Value)
		}
	}
	return earned, possible
}

// SectionScore is the section's percentage in [0,100]. Answers are keyed by
// question ID; answers for questions outside the section are ignored.
func SectionScore(s domain.Section, answers map[string]domain.Answer) float64 {
	earned, possible := sectionPoints(s, answers)
	return Percentage(earned, possible)
}

// AuditScore is the same computation scoped to every question in the
// template.
func AuditScore(t domain.Template, answers map[string]domain.Answer) float64 {
	var earned, possible float64
	for _, s := range t.Sections {
		e, p := sectionPoints(s, answers)
		earned += e
		possible += p
	}
	return Percentage(earned, possible)
}

// SectionScores returns the per-section breakdown for the template, in
// template order.
func SectionScores(t domain.Template, answers map[string]domain.Answer) []domain.SectionScore {
	scores := make([]domain.SectionScore, 0, len(t.Sections))
	for _, s := range t.Sections {
		earned, possible := sectionPoints(s, answers)
		answered := 0
		for _, q := range s.Questions {
			if _, ok := answers[q.ID]; ok {
				answered++
			}
		}
		scores = append(scores, domain.SectionScore{
			SectionID:         s.ID,
			SectionName:       s.Name,
			SectionCode:       s.Code,
			TotalQuestions:    len(s.Questions),
			AnsweredQuestions: answered,
			Score:             earned,
			MaxScore:          possible,
			Percentage:        Percentage(earned, possible),
		})
	}
	return scores
}

// ByQuestion indexes answers by question ID, keeping the last answer when
// duplicates occur (the store's uniqueness constraint makes that impossible
// in practice).
func ByQuestion(answers []domain.Answer) map[string]domain.Answer {
	m := make(map[string]domain.Answer, len(answers))
	for _, a := range answers {
		m[a.QuestionID] = a
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2 rounds to two decimals, the presentation granularity of all scores.
func Round2(v float64) float64 {
	return round2(v)
}
