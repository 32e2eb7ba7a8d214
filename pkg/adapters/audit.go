package adapters

import (
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func MapAuditDomainToApi(a domain.Audit) api.Audit {
	progress := 0.0
	if a.TotalQuestions > 0 {
		progress = float64(a.AnsweredQuestions) / float64(a.TotalQuestions) * 100
	}
	return api.Audit{
		ID:                a.ID,
		Code:              a.Code,
		Name:              a.Name,
		Description:       a.Description,
		TemplateID:        a.TemplateID,
		OrganizationID:    a.OrganizationID,
		LevelType:         string(a.Level.Type),
		LevelID:           a.Level.UnitID,
		LevelName:         a.Level.UnitName,
		Status:            string(a.Status),
		TotalQuestions:    a.TotalQuestions,
		AnsweredQuestions: a.AnsweredQuestions,
		Score:             a.Score,
		Progress:          progress,
		StartDate:         a.StartDate,
		EndDate:           a.EndDate,
		CompletedAt:       a.CompletedAt,
		CreatedBy:         a.CreatedBy,
		AssignedTo:        a.AssignedTo,
		CreatedAt:         a.CreatedAt,
	}
}

func MapAnswerDomainToApi(a domain.Answer) api.Answer {
	res := api.Answer{
		ID:         a.ID,
		AuditID:    a.AuditID,
		QuestionID: a.QuestionID,
		Comments:   a.Comments,
		AnsweredBy: a.AnsweredBy,
		AnsweredAt: a.AnsweredAt,
		Score:      a.Score,
		MaxScore:   a.MaxScore,
	}
	switch v := a.Value.(type) {
	case domain.BoolValue:
		res.Kind = string(domain.AnswerKindBool)
		res.AnswerBoolean = &v.Value
	case domain.ScaleValue:
		res.Kind = string(domain.AnswerKindScale)
		res.AnswerScale = &v.Value
	case domain.ChoiceValue:
		res.Kind = string(domain.AnswerKindChoice)
		res.AnswerChoice = &v.Value
	case domain.TextValue:
		res.Kind = string(domain.AnswerKindText)
		res.AnswerText = &v.Value
	}
	return res
}

// MapSubmitAnswerApiToDomain extracts the answer union from a submit request.
// Exactly one answer field must be populated.
func MapSubmitAnswerApiToDomain(req api.SubmitAnswerRequest) (domain.AnswerValue, error) {
	var value domain.AnswerValue
	populated := 0
	if req.AnswerBoolean != nil {
		value = domain.BoolValue{Value: *req.AnswerBoolean}
		populated++
	}
	if req.AnswerScale != nil {
		value = domain.ScaleValue{Value: *req.AnswerScale}
		populated++
	}
	if req.AnswerChoice != nil {
		value = domain.ChoiceValue{Value: *req.AnswerChoice}
		populated++
	}
	if req.AnswerText != nil {
		value = domain.TextValue{Value: *req.AnswerText}
		populated++
	}
	if populated != 1 {
		return nil, domain.ErrInvalidAnswer
	}
	return value, nil
}

func MapRecommendationDomainToApi(r domain.Recommendation) api.Recommendation {
	return api.Recommendation{
		ID:             r.ID,
		AuditID:        r.AuditID,
		SectionID:      r.SectionID,
		QuestionID:     r.QuestionID,
		Title:          r.Title,
		Description:    r.Description,
		ActionRequired: r.ActionRequired,
		Priority:       string(r.Priority),
		Category:       string(r.Category),
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}
