package api

type TrendPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Name  string  `json:"name"`
}

type Statistics struct {
	TotalAudits      int     `json:"total_audits"`
	CompletedAudits  int     `json:"completed_audits"`
	InProgressAudits int     `json:"in_progress_audits"`
	DraftAudits      int     `json:"draft_audits"`
	AverageScore     float64 `json:"average_score"`

	AuditsByStatus map[string]int `json:"audits_by_status"`
	AuditsByLevel  map[string]int `json:"audits_by_level"`

	RecentAudits []Audit      `json:"recent_audits"`
	ScoreTrend   []TrendPoint `json:"score_trend"`
}

type SectionComparison struct {
	SectionID   string             `json:"section_id"`
	SectionName string             `json:"section_name"`
	SectionCode string             `json:"section_code"`
	Scores      map[string]float64 `json:"scores"`
}

type AuditScoreRef struct {
	AuditID string  `json:"id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
}

type AuditComparison struct {
	Audits       []Audit             `json:"audits"`
	Sections     []SectionComparison `json:"sections_comparison"`
	AverageScore float64             `json:"average_score"`
	Best         AuditScoreRef       `json:"best_audit"`
	Worst        AuditScoreRef       `json:"worst_audit"`
}

type Error struct {
	Error string `json:"error"`
}
