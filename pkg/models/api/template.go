package api

import "time"

type Question struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	Choices     []string `json:"choices,omitempty"`
	Required    bool     `json:"required"`
	Order       int      `json:"order"`
	Weight      int      `json:"weight"`
	MaxScore    int      `json:"max_score"`
}

type Section struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description,omitempty"`
	Order       int        `json:"order"`
	Questions   []Question `json:"questions,omitempty"`
}

type Template struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Description    string    `json:"description,omitempty"`
	Standard       string    `json:"standard"`
	Version        string    `json:"version"`
	Active         bool      `json:"active"`
	TotalSections  int       `json:"total_sections"`
	TotalQuestions int       `json:"total_questions"`
	Sections       []Section `json:"sections,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
