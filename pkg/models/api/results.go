package api

import "time"

type SectionScore struct {
	SectionID         string  `json:"section_id"`
	SectionName       string  `json:"section_name"`
	SectionCode       string  `json:"section_code"`
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	Score             float64 `json:"score"`
	MaxScore          float64 `json:"max_score"`
	Percentage        float64 `json:"percentage"`
}

type AnswersSummary struct {
	Yes            int     `json:"yes"`
	No             int     `json:"no"`
	ScaleAvg       float64 `json:"scale_avg"`
	TotalAnswered  int     `json:"total_answered"`
	TotalQuestions int     `json:"total_questions"`
}

type Recommendation struct {
	ID             string    `json:"id"`
	AuditID        string    `json:"audit_id"`
	SectionID      string    `json:"section_id,omitempty"`
	QuestionID     string    `json:"question_id,omitempty"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ActionRequired string    `json:"action_required"`
	Priority       string    `json:"priority"`
	Category       string    `json:"category"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateRecommendationStatusRequest struct {
	Status string `json:"status"`
}

type AuditResults struct {
	Audit             Audit            `json:"audit"`
	OverallScore      float64          `json:"overall_score"`
	TotalQuestions    int              `json:"total_questions"`
	AnsweredQuestions int              `json:"answered_questions"`
	SectionScores     []SectionScore   `json:"sections_scores"`
	AnswersSummary    AnswersSummary   `json:"answers_summary"`
	Recommendations   []Recommendation `json:"recommendations"`
}
