package campaigning

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
)

// AnalyzeCampaign gera, grava e devolve a análise; campanha inexistente não gera registro
func (s *Service) AnalyzeCampaign(ctx context.Context, campaignID string) (*domain.Analysis, error) {
	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(ctx, campaign)
	if analysis == nil {
		analysis = domain.NewDegradedAnalysis(nil)
		analysis.ID = utils.NewID()
		analysis.AnalysisDate = s.now().UTC()
	}
	analysis.CampaignID = campaign.ID

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao gravar análise")
	}

	logger := logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"analysis_id": analysis.ID,
		"degraded":    analysis.Degraded,
	})

	if err := s.cache.SetLatest(ctx, analysis); err != nil {
		logger.WithError(err).Warn("Erro ao atualizar cache da análise")
	}

	logger.Info("Análise de campanha gerada")

	notification := &domain.Notification{
		Type:    domain.NotificationCampaignAnalyzed,
		Title:   "Análise de campanha disponível",
		Message: fmt.Sprintf("A análise da campanha %q foi concluída com nota %.1f.", campaign.Name, analysis.PerformanceScore),
		Metadata: map[string]any{
			"campaign_id": campaign.ID,
			"analysis_id": analysis.ID,
			"degraded":    analysis.Degraded,
		},
	}
	s.notifyOwner(ctx, campaign, notification)

	return analysis, nil
}

// GetLatestAnalysis consulta o cache antes do banco
func (s *Service) GetLatestAnalysis(ctx context.Context, campaignID string) (*domain.Analysis, error) {
	if cached, err := s.cache.GetLatest(ctx, campaignID); err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Warn("Erro ao ler cache da análise")
	} else if cached != nil {
		return cached, nil
	}

	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	analysis, err := s.analysisRepo.GetLatestByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao buscar análise")
	}

	if analysis == nil {
		return nil, NewCampaignErrorWithID(ErrAnalysisNotFound, apiErrors.ErrAnalysisNotFound, campaignID, "Campanha ainda não possui análise")
	}

	if err := s.cache.SetLatest(ctx, analysis); err != nil {
		logrus.WithError(err).WithField("campaign_id", campaignID).Warn("Erro ao atualizar cache da análise")
	}

	return analysis, nil
}

func (s *Service) ListAnalyses(ctx context.Context, campaignID string, pagination domain.Pagination) ([]*domain.Analysis, error) {
	if _, err := s.GetCampaign(ctx, campaignID); err != nil {
		return nil, err
	}

	analyses, err := s.analysisRepo.ListByCampaignID(ctx, campaignID, pagination)
	if err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao listar análises")
	}

	return analyses, nil
}
