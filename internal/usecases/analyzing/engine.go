package analyzing

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/openai"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const systemPrompt = "You are a marketing analytics expert."

// Analyzer gera a análise de uma campanha.
// Sempre retorna uma análise completa: falhas do backend produzem uma análise degradada.
//
//go:generate mockgen -source=engine.go -destination=mocks/engine_mock.go -package=mocks
type Analyzer interface {
	Analyze(ctx context.Context, campaign *domain.Campaign) *domain.Analysis
}

type Engine struct {
	completer openai.Completer
	now       func() time.Time
}

func NewEngine(completer openai.Completer) *Engine {
	return &Engine{
		completer: completer,
		now:       time.Now,
	}
}

func (e *Engine) Analyze(ctx context.Context, campaign *domain.Campaign) (analysis *domain.Analysis) {
	campaignID := ""
	if campaign != nil {
		campaignID = campaign.ID
	}

	logger := logrus.WithField("campaign_id", campaignID)

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Panic ao analisar campanha")
			analysis = e.finalize(domain.NewDegradedAnalysis(fmt.Errorf("panic: %v", r)), campaignID)
		}

		result := "ok"
		if analysis.Degraded {
			result = "degraded"
		}
		metrics.AnalysesGenerated.WithLabelValues(result).Inc()
	}()

	if campaign == nil {
		return e.finalize(domain.NewDegradedAnalysis(fmt.Errorf("campanha não informada")), campaignID)
	}

	prompt, err := BuildPrompt(campaign)
	if err != nil {
		return e.finalize(domain.NewDegradedAnalysis(err), campaignID)
	}

	text, err := e.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		logger.WithError(err).Warn("Backend de análise indisponível, retornando análise degradada")
		return e.finalize(domain.NewDegradedAnalysis(err), campaignID)
	}

	parsed, err := ParseV1(text)
	if err != nil {
		logger.WithError(err).Warn("Resposta do backend de análise fora do contrato")
		return e.finalize(domain.NewDegradedAnalysis(err), campaignID)
	}

	return e.finalize(parsed, campaignID)
}

func (e *Engine) finalize(analysis *domain.Analysis, campaignID string) *domain.Analysis {
	analysis.ID = utils.NewID()
	analysis.CampaignID = campaignID
	analysis.AnalysisDate = e.now().UTC()
	return analysis
}

// BuildPrompt descreve a campanha e pede a resposta no formato v1
func BuildPrompt(campaign *domain.Campaign) (string, error) {
	metricsPayload := "{}"
	if len(campaign.PerformanceMetrics) > 0 {
		b, err := json.Marshal(campaign.PerformanceMetrics)
		if err != nil {
			return "", fmt.Errorf("serializar métricas: %w", err)
		}
		metricsPayload = string(b)
	}

	targetAudience := "not specified"
	if campaign.TargetAudience != nil && strings.TrimSpace(*campaign.TargetAudience) != "" {
		targetAudience = *campaign.TargetAudience
	}

	var sb strings.Builder
	sb.WriteString("Analyze this marketing campaign:\n")
	fmt.Fprintf(&sb, "Name: %s\n", campaign.Name)
	fmt.Fprintf(&sb, "Platform: %s\n", campaign.Platform)
	fmt.Fprintf(&sb, "Budget: %s\n", formatBudget(campaign.Budget))
	fmt.Fprintf(&sb, "Target Audience: %s\n", targetAudience)
	fmt.Fprintf(&sb, "Performance Metrics: %s\n\n", metricsPayload)
	sb.WriteString("Respond only with a JSON object in this exact format:\n")
	sb.WriteString(`{"version":"v1","insights":{"<metric>":"<observation>"},"recommendations":["..."],"performance_score":<number 0-100>,"improvement_areas":["..."]}`)

	return sb.String(), nil
}

func formatBudget(b float64) string {
	return fmt.Sprintf("%.2f", b)
}
