package campaigning

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
)

// schedulePublish dispara a publicação em segundo plano.
// Retorna false quando a campanha já tem uma publicação em andamento.
func (s *Service) schedulePublish(campaign *domain.Campaign) bool {
	if _, loaded := s.inflight.LoadOrStore(campaign.ID, struct{}{}); loaded {
		return false
	}

	snapshot := *campaign

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inflight.Delete(snapshot.ID)

		logger := logrus.WithFields(logrus.Fields{
			"campaign_id": snapshot.ID,
			"platform":    snapshot.Platform,
		})

		var result *domain.PublishResult
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.WithField("panic", r).Error("Panic na tarefa de publicação")
					result = domain.NewFailedPublishResult(snapshot.Platform, fmt.Errorf("panic: %v", r))
				}
			}()

			var err error
			result, err = s.dispatcher.Dispatch(s.baseCtx, &snapshot)
			if err != nil {
				logger.WithError(err).Error("Publicação não encaminhada")
				result = domain.NewFailedPublishResult(snapshot.Platform, err)
			}
		}()

		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(s.baseCtx), persistResultTimeout)
		defer cancel()

		if _, err := s.ApplyPublishResult(persistCtx, snapshot.ID, result); err != nil {
			logger.WithError(err).Error("Erro ao aplicar resultado da publicação")
		}
	}()

	return true
}

// ApplyPublishResult grava o resultado da plataforma na campanha e avisa o dono.
// Sucesso ativa a campanha, exceto se já concluída; falha mantém a campanha como rascunho.
func (s *Service) ApplyPublishResult(ctx context.Context, campaignID string, result *domain.PublishResult) (*domain.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if result == nil {
		result = domain.NewFailedPublishResult(campaign.Platform, nil)
	}

	notification := &domain.Notification{
		Metadata: map[string]any{
			"campaign_id": campaign.ID,
			"platform":    campaign.Platform,
		},
	}

	if result.Succeeded() {
		now := s.now().UTC()
		platformID := result.PlatformID

		campaign.PlatformCampaignID = &platformID
		campaign.PublishStatus = domain.PublishStatusPublished
		campaign.PublishError = nil
		campaign.PublishedAt = &now
		if !campaign.Status.IsTerminal() {
			campaign.Status = domain.CampaignStatusActive
		}

		notification.Type = domain.NotificationCampaignPublished
		notification.Title = "Campanha publicada"
		notification.Message = fmt.Sprintf("A campanha %q foi publicada em %s.", campaign.Name, campaign.Platform)
		notification.Metadata["platform_campaign_id"] = platformID
	} else {
		publishError := result.Error
		if publishError == "" {
			publishError = "unknown publish error"
		}

		campaign.PublishStatus = domain.PublishStatusFailed
		campaign.PublishError = &publishError
		if !campaign.Status.IsTerminal() {
			campaign.Status = domain.CampaignStatusDraft
		}

		notification.Type = domain.NotificationCampaignPublishFailed
		notification.Title = "Falha ao publicar campanha"
		notification.Message = fmt.Sprintf("A campanha %q não pôde ser publicada em %s: %s", campaign.Name, campaign.Platform, publishError)
		notification.Metadata["error"] = publishError
	}

	if err := s.campaignRepo.UpdatePublishState(ctx, campaign); err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao gravar resultado da publicação")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":    campaign.ID,
		"publish_status": campaign.PublishStatus,
		"status":         campaign.Status,
	}).Info("Resultado da publicação aplicado")

	s.notifyOwner(ctx, campaign, notification)

	return campaign, nil
}

// PublishCampaign agenda nova tentativa para campanha ainda não publicada
func (s *Service) PublishCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.PublishStatus == domain.PublishStatusPublished {
		return nil, NewCampaignErrorWithID(ErrCampaignAlreadyPublished, apiErrors.ErrCampaignAlreadyPublic, campaignID, "Campanha já publicada")
	}

	if !s.dispatcher.Supports(campaign.Platform) {
		return nil, NewCampaignErrorWithID(ErrUnsupportedPlatform, apiErrors.ErrUnsupportedPlatform, campaignID, "Plataforma sem publicador configurado")
	}

	if !s.schedulePublish(campaign) {
		return nil, NewCampaignErrorWithID(ErrPublishInProgress, apiErrors.ErrCampaignAlreadyPublic, campaignID, "Publicação já em andamento")
	}

	campaign.PublishStatus = domain.PublishStatusPending
	return campaign, nil
}
