package domain

import "time"

type TrendPoint struct {
	Date  time.Time
	Score float64
	Name  string
}

// Statistics aggregates the audits visible within one organization.
// Level buckets are mutually exclusive: each audit counts once, at its
// single assigned level.
type Statistics struct {
	TotalAudits      int
	CompletedAudits  int
	InProgressAudits int
	DraftAudits      int
	AverageScore     float64

	AuditsByStatus map[AuditStatus]int
	AuditsByLevel  map[LevelType]int

	RecentAudits []Audit
	ScoreTrend   []TrendPoint // chronologically ascending
}

// SectionComparison holds one section's score per compared audit.
type SectionComparison struct {
	SectionID   string
	SectionName string
	SectionCode string
	Scores      map[string]float64 // audit ID -> section percentage
}

type AuditScoreRef struct {
	AuditID string
	Name    string
	Score   float64
}

type AuditComparison struct {
	Audits       []Audit
	Sections     []SectionComparison
	AverageScore float64
	Best         AuditScoreRef
	Worst        AuditScoreRef
}
