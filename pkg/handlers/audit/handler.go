package audit

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/de-tools/audit-atlas/pkg/adapters"
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
	auditsvc "github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/stats"
	"github.com/de-tools/audit-atlas/pkg/services/templates"
	auditstore "github.com/de-tools/audit-atlas/pkg/store/duckdb/audit"
)

type Handler struct {
	audits    auditsvc.Manager
	reporter  stats.Reporter
	templates templates.Catalog
}

func NewHandler(audits auditsvc.Manager, reporter stats.Reporter, catalog templates.Catalog) *Handler {
	return &Handler{
		audits:    audits,
		reporter:  reporter,
		templates: catalog,
	}
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.templates.List(ctx)
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	response := make([]api.Template, 0, len(list))
	for _, t := range list {
		response = append(response, adapters.MapTemplateDomainToApi(t))
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := h.templates.Get(ctx, chi.URLParam(r, "templateID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapTemplateDomainToApi(*t))
}

func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateAuditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, ctx, "invalid request body")
		return
	}
	if req.Name == "" || req.TemplateID == "" || req.OrganizationID == "" {
		writeBadRequest(w, ctx, "name, template_id and organization_id are required")
		return
	}
	levelType := domain.LevelType(req.LevelType)
	switch levelType {
	case domain.LevelCompany, domain.LevelBranch, domain.LevelDepartment, domain.LevelTeam, domain.LevelSubteam:
	default:
		writeBadRequest(w, ctx, "invalid level_type")
		return
	}

	audit, err := h.audits.CreateAudit(ctx, auditsvc.CreateAuditRequest{
		Name:           req.Name,
		Description:    req.Description,
		TemplateID:     req.TemplateID,
		OrganizationID: req.OrganizationID,
		Level: domain.Level{
			Type:     levelType,
			UnitID:   req.LevelID,
			UnitName: req.LevelName,
		},
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusCreated, adapters.MapAuditDomainToApi(*audit))
}

func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	audits, err := h.audits.ListAudits(ctx, auditstore.Filters{
		OrganizationID: query.Get("organization_id"),
		Status:         domain.AuditStatus(query.Get("status")),
		TemplateID:     query.Get("template"),
		LevelType:      domain.LevelType(query.Get("level_type")),
	})
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	response := make([]api.Audit, 0, len(audits))
	for _, a := range audits {
		response = append(response, adapters.MapAuditDomainToApi(a))
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	audit, err := h.audits.GetAudit(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapAuditDomainToApi(*audit))
}

func (h *Handler) StartAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	audit, err := h.audits.StartAudit(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapAuditDomainToApi(*audit))
}

func (h *Handler) CompleteAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	audit, err := h.audits.CompleteAudit(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapAuditDomainToApi(*audit))
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auditID := chi.URLParam(r, "auditID")

	var req api.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, ctx, "invalid request body")
		return
	}
	if req.QuestionID == "" {
		writeBadRequest(w, ctx, "question_id is required")
		return
	}
	value, err := adapters.MapSubmitAnswerApiToDomain(req)
	if err != nil {
		writeError(w, ctx, err)
		return
	}

	answer, err := h.audits.SubmitAnswer(ctx, auditID, auditsvc.SubmitAnswerRequest{
		QuestionID: req.QuestionID,
		Value:      value,
		Comments:   req.Comments,
		AnsweredBy: req.AnsweredBy,
	})
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapAnswerDomainToApi(*answer))
}

func (h *Handler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	answers, err := h.audits.ListAnswers(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	response := make([]api.Answer, 0, len(answers))
	for _, a := range answers {
		response = append(response, adapters.MapAnswerDomainToApi(a))
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sections, err := h.audits.GetQuestions(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}

	response := make([]api.SectionQuestions, 0, len(sections))
	for _, sq := range sections {
		out := api.SectionQuestions{
			ID:        sq.Section.ID,
			Name:      sq.Section.Name,
			Code:      sq.Section.Code,
			Order:     sq.Section.Order,
			Questions: make([]api.QuestionState, 0, len(sq.Section.Questions)),
		}
		for _, q := range sq.Section.Questions {
			state := api.QuestionState{
				Question: adapters.MapQuestionDomainToApi(q),
				Answered: sq.Answered[q.ID],
			}
			if a, ok := sq.Answers[q.ID]; ok {
				mapped := adapters.MapAnswerDomainToApi(a)
				state.Answer = &mapped
			}
			out.Questions = append(out.Questions, state)
		}
		response = append(response, out)
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results, err := h.audits.GetResults(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapResultsDomainToApi(*results))
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recs, err := h.audits.ListRecommendations(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	response := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		response = append(response, adapters.MapRecommendationDomainToApi(rec))
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) RegenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recs, err := h.audits.RegenerateRecommendations(ctx, chi.URLParam(r, "auditID"))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	response := make([]api.Recommendation, 0, len(recs))
	for _, rec := range recs {
		response = append(response, adapters.MapRecommendationDomainToApi(rec))
	}
	writeJSON(w, ctx, http.StatusOK, response)
}

func (h *Handler) UpdateRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "recommendationID")

	var req api.UpdateRecommendationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, ctx, "invalid request body")
		return
	}

	err := h.audits.UpdateRecommendationStatus(ctx, id, domain.RecommendationStatus(req.Status))
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := r.URL.Query().Get("organization_id")
	if orgID == "" {
		writeBadRequest(w, ctx, "organization_id is required")
		return
	}

	statistics, err := h.reporter.Statistics(ctx, orgID)
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapStatisticsDomainToApi(*statistics))
}

func (h *Handler) CompareAudits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("audit_ids")
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	comparison, err := h.reporter.Compare(ctx, ids)
	if err != nil {
		writeError(w, ctx, err)
		return
	}
	writeJSON(w, ctx, http.StatusOK, adapters.MapComparisonDomainToApi(*comparison))
}
