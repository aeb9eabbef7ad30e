package domain

import "time"

const (
	AnalysisParserV1 = "v1"

	degradedRecommendation   = "Unable to generate recommendations"
	degradedImprovementArea  = "System error"
	degradedAnalysisErrorKey = "error"
)

// Analysis é o resumo gerado por IA para uma campanha.
// O histórico é somente de inserção; a mais recente por data é a atual.
type Analysis struct {
	ID               string         `json:"id"`
	CampaignID       string         `json:"campaign_id"`
	AnalysisDate     time.Time      `json:"analysis_date"`
	Insights         map[string]any `json:"insights"`
	Recommendations  []string       `json:"recommendations"`
	PerformanceScore float64        `json:"performance_score"`
	ImprovementAreas []string       `json:"improvement_areas"`
	ParserVersion    string         `json:"parser_version"`
	Degraded         bool           `json:"degraded"`
}

// NewDegradedAnalysis monta a análise usada quando o backend de IA falha
func NewDegradedAnalysis(err error) *Analysis {
	msg := "analysis backend unavailable"
	if err != nil {
		msg = err.Error()
	}

	return &Analysis{
		Insights:         map[string]any{degradedAnalysisErrorKey: msg},
		Recommendations:  []string{degradedRecommendation},
		PerformanceScore: 0.0,
		ImprovementAreas: []string{degradedImprovementArea},
		ParserVersion:    AnalysisParserV1,
		Degraded:         true,
	}
}
