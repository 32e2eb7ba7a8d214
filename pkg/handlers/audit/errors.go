package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func writeJSON(w http.ResponseWriter, ctx context.Context, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeBadRequest(w http.ResponseWriter, ctx context.Context, msg string) {
	writeJSON(w, ctx, http.StatusBadRequest, api.Error{Error: msg})
}

// writeError maps rejected-operation signals to HTTP statuses: referential
// errors to 404, state-machine violations to 409, caller validation to 400,
// anything else to 500.
func writeError(w http.ResponseWriter, ctx context.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrAuditNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrRecommendationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAuditNotEditable),
		errors.Is(err, domain.ErrAuditNotStartable),
		errors.Is(err, domain.ErrAuditNotCompletable):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAnswer),
		errors.Is(err, domain.ErrInvalidComparison),
		errors.Is(err, domain.ErrInvalidRecommendationStatus):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, ctx, status, api.Error{Error: err.Error()})
}
