package domain

import "time"

type QuestionType string

const (
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeScale          QuestionType = "scale"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeText           QuestionType = "text"
)

// Question is a single questionnaire item. For multiple_choice questions
// Choices is ordered by desirability: the first option earns full credit,
// the second half credit, anything else zero.
type Question struct {
	ID          string
	SectionID   string
	Code        string
	Text        string
	Description string
	Type        QuestionType
	Choices     []string
	Required    bool
	Order       int
	Weight      int
	MaxScore    int
}

// MaxPoints is the points ceiling for the question: MaxScore x Weight.
func (q Question) MaxPoints() float64 {
	return float64(q.MaxScore) * float64(q.Weight)
}

type Section struct {
	ID          string
	TemplateID  string
	Name        string
	Code        string
	Description string
	Order       int
	Questions   []Question
}

// Template is a reusable questionnaire definition (sections + questions).
// Templates referenced by audits are treated as immutable: scoring tolerates
// questions that have since disappeared by leaving them out of scope.
type Template struct {
	ID          string
	Name        string
	Code        string
	Description string
	Standard    string
	Version     string
	Active      bool
	Sections    []Section
	CreatedAt   time.Time
}

func (t Template) TotalQuestions() int {
	total := 0
	for _, s := range t.Sections {
		total += len(s.Questions)
	}
	return total
}

func (t Template) QuestionByID(id string) (Question, bool) {
	for _, s := range t.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}
