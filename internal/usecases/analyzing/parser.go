package analyzing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
)

const (
	minPerformanceScore = 0.0
	maxPerformanceScore = 100.0
)

var (
	ErrNoJSONObject      = errors.New("resposta sem objeto JSON")
	ErrIncompletePayload = errors.New("resposta incompleta")
	ErrUnknownVersion    = errors.New("versão do contrato desconhecida")
)

type v1Payload struct {
	Version          string         `json:"version"`
	Insights         map[string]any `json:"insights"`
	Recommendations  []string       `json:"recommendations"`
	PerformanceScore *float64       `json:"performance_score"`
	ImprovementAreas []string       `json:"improvement_areas"`
}

// ParseV1 extrai o objeto JSON mais externo do texto, tolerando blocos de código e prosa ao redor
func ParseV1(text string) (*domain.Analysis, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSONObject
	}

	var payload v1Payload
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("decodificar resposta: %w", err)
	}

	if payload.Version != "" && payload.Version != domain.AnalysisParserV1 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVersion, payload.Version)
	}

	recommendations := nonBlank(payload.Recommendations)
	improvementAreas := nonBlank(payload.ImprovementAreas)

	var missing []string
	if len(payload.Insights) == 0 {
		missing = append(missing, "insights")
	}
	if len(recommendations) == 0 {
		missing = append(missing, "recommendations")
	}
	if payload.PerformanceScore == nil {
		missing = append(missing, "performance_score")
	}
	if len(improvementAreas) == 0 {
		missing = append(missing, "improvement_areas")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompletePayload, strings.Join(missing, ", "))
	}

	return &domain.Analysis{
		Insights:         payload.Insights,
		Recommendations:  recommendations,
		PerformanceScore: utils.RoundWithTwoDecimalPlace(clampScore(*payload.PerformanceScore)),
		ImprovementAreas: improvementAreas,
		ParserVersion:    domain.AnalysisParserV1,
	}, nil
}

func clampScore(score float64) float64 {
	if score < minPerformanceScore {
		return minPerformanceScore
	}
	if score > maxPerformanceScore {
		return maxPerformanceScore
	}
	return score
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
