package domain

import "errors"

// Referential and state-machine errors surfaced to callers as explicit
// rejected-operation signals. Scoring itself never errors: bad or missing
// answer data degrades to zero points instead.
var (
	ErrTemplateNotFound       = errors.New("template not found")
	ErrAuditNotFound          = errors.New("audit not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")

	ErrAuditNotEditable    = errors.New("audit no longer accepts answers")
	ErrAuditNotStartable   = errors.New("only draft audits can be started")
	ErrAuditNotCompletable = errors.New("only in-progress audits can be completed")

	ErrInvalidAnswer               = errors.New("exactly one answer value must be provided")
	ErrInvalidComparison           = errors.New("comparison requires 2 to 5 completed audits sharing one template")
	ErrInvalidRecommendationStatus = errors.New("invalid recommendation status")
)
