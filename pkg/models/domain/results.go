package domain

// SectionScore is the per-section scoring breakdown for an audit.
// Score/MaxScore are raw points; Percentage is 0-100 with unanswered
// questions still counted in MaxScore.
type SectionScore struct {
	SectionID         string
	SectionName       string
	SectionCode       string
	TotalQuestions    int
	AnsweredQuestions int
	Score             float64
	MaxScore          float64
	Percentage        float64
}

type AnswersSummary struct {
	Yes            int
	No             int
	ScaleAvg       float64
	TotalAnswered  int
	TotalQuestions int
}

type AuditResults struct {
	Audit             Audit
	OverallScore      float64
	TotalQuestions    int
	AnsweredQuestions int
	SectionScores     []SectionScore
	AnswersSummary    AnswersSummary
	Recommendations   []Recommendation
}

// SectionQuestions pairs a template section with the answered state of each
// of its questions for one audit, used by questionnaire views.
type SectionQuestions struct {
	Section  Section
	Answered map[string]bool   // question ID -> answered
	Answers  map[string]Answer // question ID -> current answer
}
