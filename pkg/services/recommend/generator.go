package recommend

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/scoring"
)

// Section percentage buckets, half-open [lower, upper): exactly 50.00%
// lands in the "needs improvement" bucket, not the critical one.
const (
	criticalBelow = 50.0
	highBelow     = 70.0
	mediumBelow   = 85.0
)

// Generate derives the complete recommendation set for an audit from its
// template and current answers. It is deterministic in content: calling it
// twice with the same answers yields the same titles, priorities, categories
// and order (identifiers differ). All recommendations start as pending.
//
// Two sources, concatenated: per-section threshold findings in template
// order, then per-answer findings in template question order. A section with
// zero questions scores 0% and is flagged critical on purpose - an empty
// section in a referenced template is unmitigated risk, not something to
// skip silently.
func Generate(auditID string, t domain.Template, answers map[string]domain.Answer) []domain.Recommendation {
	recs := make([]domain.Recommendation, 0)

	for _, score := range scoring.SectionScores(t, answers) {
		if rec, ok := sectionRecommendation(auditID, score); ok {
			recs = append(recs, rec)
		}
	}

	for _, s := range t.Sections {
		for _, q := range s.Questions {
			a, ok := answers[q.ID]
			if !ok {
				continue
			}
			if rec, ok := answerRecommendation(auditID, q, a); ok {
				recs = append(recs, rec)
			}
		}
	}

	return recs
}

func sectionRecommendation(auditID string, score domain.SectionScore) (domain.Recommendation, bool) {
	rec := domain.Recommendation{
		ID:        uuid.NewString(),
		AuditID:   auditID,
		SectionID: score.SectionID,
		Category:  domain.CategoryOrganizational,
		Status:    domain.RecommendationPending,
	}

	pct := score.Percentage
	switch {
	case pct < criticalBelow:
		rec.Priority = domain.PriorityCritical
		rec.Title = fmt.Sprintf("Critical section: %s", score.SectionName)
		rec.Description = fmt.Sprintf(
			"Section %q scored %.0f%%, well below the acceptable minimum (50%%).",
			score.SectionName, pct)
		rec.ActionRequired = fmt.Sprintf(
			"Urgently review all controls in %s and implement immediate corrective measures.",
			score.SectionName)
	case pct < highBelow:
		rec.Priority = domain.PriorityHigh
		rec.Title = fmt.Sprintf("Section needs improvement: %s", score.SectionName)
		rec.Description = fmt.Sprintf(
			"Section %q scored %.0f%%, below the target level (70%%).",
			score.SectionName, pct)
		rec.ActionRequired = fmt.Sprintf(
			"Identify the specific gaps in %s and plan improvements.", score.SectionName)
	case pct < mediumBelow:
		rec.Priority = domain.PriorityMedium
		rec.Title = fmt.Sprintf("Improvement opportunity: %s", score.SectionName)
		rec.Description = fmt.Sprintf(
			"Section %q scored %.0f%%. There is room for optimization.",
			score.SectionName, pct)
		rec.ActionRequired = fmt.Sprintf(
			"Review the controls in %s to optimize compliance.", score.SectionName)
	default:
		return domain.Recommendation{}, false
	}

	return rec, true
}

func answerRecommendation(auditID string, q domain.Question, a domain.Answer) (domain.Recommendation, bool) {
	rec := domain.Recommendation{
		ID:         uuid.NewString(),
		AuditID:    auditID,
		SectionID:  q.SectionID,
		QuestionID: q.ID,
		Category:   domain.CategoryTechnical,
		Status:     domain.RecommendationPending,
	}

	switch q.Type {
	case domain.QuestionTypeYesNo:
		b, ok := a.Value.(domain.BoolValue)
		if !ok || b.Value {
			return domain.Recommendation{}, false
		}
		rec.Priority = domain.PriorityHigh
		rec.Title = fmt.Sprintf("Control not implemented: %s", q.Code)
		rec.Description = q.Text
		rec.ActionRequired = "Implement this control as required by the standard."
		return rec, true

	case domain.QuestionTypeScale:
		s, ok := a.Value.(domain.ScaleValue)
		if !ok || s.Value < 1 || s.Value > 2 {
			return domain.Recommendation{}, false
		}
		rec.Priority = domain.PriorityMedium
		if s.Value == 1 {
			rec.Priority = domain.PriorityHigh
		}
		rec.Title = fmt.Sprintf("Deficient control: %s", q.Code)
		rec.Description = fmt.Sprintf("%s - rated %d/5", q.Text, s.Value)
		rec.ActionRequired = "Significantly improve the implementation of this control."
		return rec, true
	}

	return domain.Recommendation{}, false
}
