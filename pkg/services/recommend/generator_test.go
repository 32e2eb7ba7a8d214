package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

const auditID = "audit-1"

func booleanTemplate() domain.Template {
	return domain.Template{
		ID: "t1",
		Sections: []domain.Section{
			{
				ID:   "s1",
				Name: "Access Control",
				Code: "SEC-1",
				Questions: []domain.Question{
					{ID: "q1", SectionID: "s1", Code: "Q-1", Text: "Is MFA enforced?", Type: domain.QuestionTypeYesNo, MaxScore: 10, Weight: 1},
					{ID: "q2", SectionID: "s1", Code: "Q-2", Text: "Are access reviews periodic?", Type: domain.QuestionTypeYesNo, MaxScore: 10, Weight: 1},
				},
			},
		},
	}
}

func sectionRecs(recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, 0)
	for _, r := range recs {
		if r.QuestionID == "" {
			out = append(out, r)
		}
	}
	return out
}

func answerRecs(recs []domain.Recommendation) []domain.Recommendation {
	out := make([]domain.Recommendation, 0)
	for _, r := range recs {
		if r.QuestionID != "" {
			out = append(out, r)
		}
	}
	return out
}

func TestGenerate_SectionBuckets(t *testing.T) {
	template := booleanTemplate()

	t.Run("no answers flags section critical", func(t *testing.T) {
		recs := Generate(auditID, template, nil)

		section := sectionRecs(recs)
		require.Len(t, section, 1)
		assert.Equal(t, domain.PriorityCritical, section[0].Priority)
		assert.Equal(t, domain.CategoryOrganizational, section[0].Category)
		assert.Equal(t, "s1", section[0].SectionID)
		assert.Equal(t, domain.RecommendationPending, section[0].Status)
	})

	t.Run("exactly 50 percent lands in the high bucket", func(t *testing.T) {
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: true}},
		}
		recs := Generate(auditID, template, answers)

		section := sectionRecs(recs)
		require.Len(t, section, 1)
		assert.Equal(t, domain.PriorityHigh, section[0].Priority)
	})

	t.Run("100 percent emits no section recommendation", func(t *testing.T) {
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: true}},
			"q2": {QuestionID: "q2", Value: domain.BoolValue{Value: true}},
		}
		recs := Generate(auditID, template, answers)
		assert.Empty(t, sectionRecs(recs))
	})

	t.Run("medium bucket between 70 and 85", func(t *testing.T) {
		scaleTemplate := domain.Template{
			ID: "t2",
			Sections: []domain.Section{{
				ID:   "s1",
				Name: "Monitoring",
				Questions: []domain.Question{
					{ID: "q1", SectionID: "s1", Type: domain.QuestionTypeScale, MaxScore: 10, Weight: 1},
				},
			}},
		}
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.ScaleValue{Value: 4}}, // 80%
		}
		recs := Generate(auditID, scaleTemplate, answers)

		section := sectionRecs(recs)
		require.Len(t, section, 1)
		assert.Equal(t, domain.PriorityMedium, section[0].Priority)
	})

	t.Run("zero-question section is flagged critical", func(t *testing.T) {
		template := domain.Template{
			ID:       "t3",
			Sections: []domain.Section{{ID: "s-empty", Name: "Placeholder"}},
		}
		recs := Generate(auditID, template, nil)

		section := sectionRecs(recs)
		require.Len(t, section, 1)
		assert.Equal(t, domain.PriorityCritical, section[0].Priority)
	})
}

func TestGenerate_AnswerFlags(t *testing.T) {
	template := booleanTemplate()

	t.Run("boolean false flags control not implemented", func(t *testing.T) {
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: false}},
			"q2": {QuestionID: "q2", Value: domain.BoolValue{Value: true}},
		}
		recs := Generate(auditID, template, answers)

		flagged := answerRecs(recs)
		require.Len(t, flagged, 1)
		assert.Equal(t, "q1", flagged[0].QuestionID)
		assert.Equal(t, "s1", flagged[0].SectionID)
		assert.Equal(t, domain.PriorityHigh, flagged[0].Priority)
		assert.Equal(t, domain.CategoryTechnical, flagged[0].Category)
		assert.Contains(t, flagged[0].Title, "Control not implemented")
	})

	t.Run("scale values 1 and 2 flag deficient controls", func(t *testing.T) {
		template := domain.Template{
			ID: "t2",
			Sections: []domain.Section{{
				ID:   "s1",
				Name: "Monitoring",
				Questions: []domain.Question{
					{ID: "q1", SectionID: "s1", Code: "Q-1", Type: domain.QuestionTypeScale, MaxScore: 10, Weight: 1},
					{ID: "q2", SectionID: "s1", Code: "Q-2", Type: domain.QuestionTypeScale, MaxScore: 10, Weight: 1},
					{ID: "q3", SectionID: "s1", Code: "Q-3", Type: domain.QuestionTypeScale, MaxScore: 10, Weight: 1},
				},
			}},
		}
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.ScaleValue{Value: 1}},
			"q2": {QuestionID: "q2", Value: domain.ScaleValue{Value: 2}},
			"q3": {QuestionID: "q3", Value: domain.ScaleValue{Value: 3}},
		}
		recs := Generate(auditID, template, answers)

		flagged := answerRecs(recs)
		require.Len(t, flagged, 2)

		byQuestion := map[string]domain.Recommendation{}
		for _, r := range flagged {
			byQuestion[r.QuestionID] = r
		}
		assert.Equal(t, domain.PriorityHigh, byQuestion["q1"].Priority)
		assert.Equal(t, domain.PriorityMedium, byQuestion["q2"].Priority)
		assert.Contains(t, byQuestion["q1"].Title, "Deficient control")
	})

	t.Run("scale 3 and above produce no flag", func(t *testing.T) {
		template := domain.Template{
			ID: "t2",
			Sections: []domain.Section{{
				ID:   "s1",
				Name: "Monitoring",
				Questions: []domain.Question{
					{ID: "q1", SectionID: "s1", Type: domain.QuestionTypeScale, MaxScore: 10, Weight: 1},
				},
			}},
		}
		answers := map[string]domain.Answer{
			"q1": {QuestionID: "q1", Value: domain.ScaleValue{Value: 5}},
		}
		assert.Empty(t, answerRecs(Generate(auditID, template, answers)))
	})
}

func TestGenerate_Idempotent(t *testing.T) {
	template := booleanTemplate()
	answers := map[string]domain.Answer{
		"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: false}},
	}

	first := Generate(auditID, template, answers)
	second := Generate(auditID, template, answers)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].Priority, second[i].Priority)
		assert.Equal(t, first[i].Category, second[i].Category)
		assert.Equal(t, first[i].SectionID, second[i].SectionID)
		assert.Equal(t, first[i].QuestionID, second[i].QuestionID)
		// identifiers are minted fresh each generation
		assert.NotEqual(t, first[i].ID, second[i].ID)
	}
}

func TestGenerate_SectionIndependence(t *testing.T) {
	template := domain.Template{
		ID: "t1",
		Sections: []domain.Section{
			{
				ID:   "s1",
				Name: "First",
				Questions: []domain.Question{
					{ID: "q1", SectionID: "s1", Type: domain.QuestionTypeYesNo, MaxScore: 10, Weight: 1},
				},
			},
			{
				ID:   "s2",
				Name: "Second",
				Questions: []domain.Question{
					{ID: "q2", SectionID: "s2", Type: domain.QuestionTypeYesNo, MaxScore: 10, Weight: 1},
				},
			},
		},
	}

	full := map[string]domain.Answer{
		"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: true}},
		"q2": {QuestionID: "q2", Value: domain.BoolValue{Value: true}},
	}
	baseline := Generate(auditID, template, full)
	assert.Empty(t, sectionRecs(baseline))

	// dropping s2's percentage must only change s2's recommendation
	degraded := map[string]domain.Answer{
		"q1": {QuestionID: "q1", Value: domain.BoolValue{Value: true}},
	}
	recs := sectionRecs(Generate(auditID, template, degraded))
	require.Len(t, recs, 1)
	assert.Equal(t, "s2", recs[0].SectionID)
	assert.Equal(t, domain.PriorityCritical, recs[0].Priority)
}
