package adapters

import (
	"github.com/de-tools/audit-atlas/pkg/models/api"
	"github.com/de-tools/audit-atlas/pkg/models/domain"
)

func MapSectionScoreDomainToApi(s domain.SectionScore) api.SectionScore {
	return api.SectionScore{
		SectionID:         s.SectionID,
		SectionName:       s.SectionName,
		SectionCode:       s.SectionCode,
		TotalQuestions:    s.TotalQuestions,
		AnsweredQuestions: s.AnsweredQuestions,
		Score:             s.Score,
		MaxScore:          s.MaxScore,
		Percentage:        s.Percentage,
	}
}

func MapResultsDomainToApi(r domain.AuditResults) api.AuditResults {
	res := api.AuditResults{
		Audit:             MapAuditDomainToApi(r.Audit),
		OverallScore:      r.OverallScore,
		TotalQuestions:    r.TotalQuestions,
		AnsweredQuestions: r.AnsweredQuestions,
		SectionScores:     make([]api.SectionScore, 0, len(r.SectionScores)),
		AnswersSummary: api.AnswersSummary{
			Yes:            r.AnswersSummary.Yes,
			No:             r.AnswersSummary.No,
			ScaleAvg:       r.AnswersSummary.ScaleAvg,
			TotalAnswered:  r.AnswersSummary.TotalAnswered,
			TotalQuestions: r.AnswersSummary.TotalQuestions,
		},
		Recommendations: make([]api.Recommendation, 0, len(r.Recommendations)),
	}
	for _, s := range r.SectionScores {
		res.SectionScores = append(res.SectionScores, MapSectionScoreDomainToApi(s))
	}
	for _, rec := range r.Recommendations {
		res.Recommendations = append(res.Recommendations, MapRecommendationDomainToApi(rec))
	}
	return res
}

func MapStatisticsDomainToApi(s domain.Statistics) api.Statistics {
	res := api.Statistics{
		TotalAudits:      s.TotalAudits,
		CompletedAudits:  s.CompletedAudits,
		InProgressAudits: s.InProgressAudits,
		DraftAudits:      s.DraftAudits,
		AverageScore:     s.AverageScore,
		AuditsByStatus:   map[string]int{},
		AuditsByLevel:    map[string]int{},
		RecentAudits:     make([]api.Audit, 0, len(s.RecentAudits)),
		ScoreTrend:       make([]api.TrendPoint, 0, len(s.ScoreTrend)),
	}
	for status, count := range s.AuditsByStatus {
		res.AuditsByStatus[string(status)] = count
	}
	for level, count := range s.AuditsByLevel {
		res.AuditsByLevel[string(level)] = count
	}
	for _, a := range s.RecentAudits {
		res.RecentAudits = append(res.RecentAudits, MapAuditDomainToApi(a))
	}
	for _, p := range s.ScoreTrend {
		res.ScoreTrend = append(res.ScoreTrend, api.TrendPoint{
			Date:  p.Date.Format("2006-01-02"),
			Score: p.Score,
			Name:  p.Name,
		})
	}
	return res
}

func MapComparisonDomainToApi(c domain.AuditComparison) api.AuditComparison {
	res := api.AuditComparison{
		Audits:       make([]api.Audit, 0, len(c.Audits)),
		Sections:     make([]api.SectionComparison, 0, len(c.Sections)),
		AverageScore: c.AverageScore,
		Best:         api.AuditScoreRef(c.Best),
		Worst:        api.AuditScoreRef(c.Worst),
	}
	for _, a := range c.Audits {
		res.Audits = append(res.Audits, MapAuditDomainToApi(a))
	}
	for _, s := range c.Sections {
		scores := map[string]float64{}
		for id, score := range s.Scores {
			scores[id] = score
		}
		res.Sections = append(res.Sections, api.SectionComparison{
			SectionID:   s.SectionID,
			SectionName: s.SectionName,
			SectionCode: s.SectionCode,
			Scores:      scores,
		})
	}
	return res
}
