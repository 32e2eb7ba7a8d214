package api

import "time"

type Audit struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	TemplateID     string `json:"template_id"`
	OrganizationID string `json:"organization_id"`
	LevelType      string `json:"level_type"`
	LevelID        string `json:"level_id"`
	LevelName      string `json:"level_name,omitempty"`

	Status            string  `json:"status"`
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	Score             float64 `json:"score"`
	Progress          float64 `json:"progress"`

	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedBy  string    `json:"created_by,omitempty"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateAuditRequest struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	TemplateID     string     `json:"template_id"`
	OrganizationID string     `json:"organization_id"`
	LevelType      string     `json:"level_type"`
	LevelID        string     `json:"level_id"`
	LevelName      string     `json:"level_name"`
	CreatedBy      string     `json:"created_by"`
	AssignedTo     string     `json:"assigned_to"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

// SubmitAnswerRequest carries exactly one populated answer field matching
// the question's declared type.
type SubmitAnswerRequest struct {
	QuestionID    string  `json:"question_id"`
	AnswerBoolean *bool   `json:"answer_boolean,omitempty"`
	AnswerScale   *int    `json:"answer_scale,omitempty"`
	AnswerChoice  *string `json:"answer_choice,omitempty"`
	AnswerText    *string `json:"answer_text,omitempty"`
	Comments      string  `json:"comments,omitempty"`
	AnsweredBy    string  `json:"answered_by,omitempty"`
}

type Answer struct {
	ID         string `json:"id"`
	AuditID    string `json:"audit_id"`
	QuestionID string `json:"question_id"`
	Kind       string `json:"kind"`

	AnswerBoolean *bool   `json:"answer_boolean,omitempty"`
	AnswerScale   *int    `json:"answer_scale,omitempty"`
	AnswerChoice  *string `json:"answer_choice,omitempty"`
	AnswerText    *string `json:"answer_text,omitempty"`

	Comments   string    `json:"comments,omitempty"`
	AnsweredBy string    `json:"answered_by,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
}

type SectionQuestions struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Order     int             `json:"order"`
	Questions []QuestionState `json:"questions"`
}

type QuestionState struct {
	Question
	Answered bool    `json:"answered"`
	Answer   *Answer `json:"answer,omitempty"`
}
