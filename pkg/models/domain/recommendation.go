package domain

import "time"

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank orders priorities from most to least urgent, lowest rank first.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

type Category string

const (
	CategoryTechnical      Category = "technical"
	CategoryOrganizational Category = "organizational"
	CategoryLegal          Category = "legal"
	CategoryDocumentation  Category = "documentation"
)

type RecommendationStatus string

const (
	RecommendationPending    RecommendationStatus = "pending"
	RecommendationInProgress RecommendationStatus = "in_progress"
	RecommendationCompleted  RecommendationStatus = "completed"
)

func ValidRecommendationStatus(s RecommendationStatus) bool {
	switch s {
	case RecommendationPending, RecommendationInProgress, RecommendationCompleted:
		return true
	}
	return false
}

// Recommendation is a generated remediation finding tied to an audit and,
// where applicable, the section and question that produced it. Status is the
// only field a human edits after generation; regeneration replaces the whole
// set and any edited statuses are lost.
type Recommendation struct {
	ID         string
	AuditID    string
	SectionID  string // empty when not section-scoped
	QuestionID string // empty when not question-scoped

	Title          string
	Description    string
	ActionRequired string

	Priority  Priority
	Category  Category
	Status    RecommendationStatus
	CreatedAt time.Time
}
