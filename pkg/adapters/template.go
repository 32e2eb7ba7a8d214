package adapters

import (
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func MapQuestionDomainToApi(q domain.Question) api.Question {
	return api.Question{
		ID:          q.ID,
		Code:        q.Code,
		Text:        q.Text,
		Description: q.Description,
		Type:        string(q.Type),
		Choices:     q.Choices,
		Required:    q.Required,
		Order:       q.Order,
		Weight:      q.Weight,
		MaxScore:    q.MaxScore,
	}
}

func MapSectionDomainToApi(s domain.Section) api.Section {
	res := api.Section{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		Description: s.Description,
		Order:       s.Order,
		Questions:   make([]api.Question, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		res.Questions = append(res.Questions, MapQuestionDomainToApi(q))
	}
	return res
}

func MapTemplateDomainToApi(t domain.Template) api.Template {
	res := api.Template{
		ID:             t.ID,
		Name:           t.Name,
		Code:           t.Code,
		Description:    t.Description,
		Standard:       t.Standard,
		Version:        t.Version,
		Active:         t.Active,
		TotalSections:  len(t.Sections),
		TotalQuestions: t.TotalQuestions(),
		Sections:       make([]api.Section, 0, len(t.Sections)),
		CreatedAt:      t.CreatedAt,
	}
	for _, s := range t.Sections {
		res.Sections = append(res.Sections, MapSectionDomainToApi(s))
	}
	return res
}
