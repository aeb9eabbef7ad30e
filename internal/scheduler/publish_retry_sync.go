package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/campaigning"
)

// PublishRetrySyncService reenvia as campanhas cuja publicação falhou
type PublishRetrySyncService struct {
	scheduler    *gocron.Scheduler
	config       config.PublishRetrySync
	campaignRepo repository.CampaignRepository
	orchestrator campaigning.Orchestrator
	state        syncState
}

func NewPublishRetrySyncService(
	campaignRepo repository.CampaignRepository,
	orchestrator campaigning.Orchestrator,
	appConfig *config.Config,
) *PublishRetrySyncService {
	cfg := appConfig.PublishRetrySync

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       cfg.CronSchedule,
		"max_concurrent_jobs": cfg.MaxConcurrentJobs,
		"sync_enabled":        cfg.Enabled,
	}).Info("Configuração do agendador de republicação carregada")

	return &PublishRetrySyncService{
		scheduler:    gocron.NewScheduler(time.UTC),
		config:       cfg,
		campaignRepo: campaignRepo,
		orchestrator: orchestrator,
	}
}

func (s *PublishRetrySyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Republicação de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de republicação de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.retryFailedPublishes(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar republicação de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de republicação de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *PublishRetrySyncService) retryFailedPublishes(ctx context.Context) {
	if !s.state.tryStart() {
		logrus.Info("Republicação já em andamento, ignorando")
		return
	}

	processed, failed := 0, 0
	defer func() { s.state.finish(processed, failed) }()

	campaigns, err := listAllCampaigns(ctx, s.campaignRepo, domain.CampaignFilter{PublishStatus: domain.PublishStatusFailed})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas com publicação falha")
		return
	}

	semaphore := make(chan struct{}, maxConcurrent(s.config.MaxConcurrentJobs))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, campaign := range campaigns {
		// campanha concluída não volta a ser publicada
		if campaign.Status.IsTerminal() {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Campaign) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			_, err := s.orchestrator.PublishCampaign(ctx, c.ID)

			mu.Lock()
			defer mu.Unlock()
			processed++

			switch {
			case err == nil:
			case errors.Is(err, campaigning.ErrPublishInProgress), errors.Is(err, campaigning.ErrCampaignAlreadyPublished):
				logrus.WithField("campaign_id", c.ID).Debug("Campanha já em publicação")
			default:
				failed++
				logrus.WithError(err).WithField("campaign_id", c.ID).Warn("Erro ao reagendar publicação")
			}
		}(campaign)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"campaigns": processed,
		"failed":    failed,
	}).Info("Republicação de campanhas agendada")
}

func (s *PublishRetrySyncService) TriggerManualSync(ctx context.Context) bool {
	if s.state.isRunning() {
		logrus.Info("Republicação já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando republicação manual de campanhas")
	go s.retryFailedPublishes(ctx)
	return true
}

func (s *PublishRetrySyncService) GetStatus() map[string]any {
	return s.state.snapshot(map[string]any{
		"sync_enabled":        s.config.Enabled,
		"sync_cron":           s.config.CronSchedule,
		"sync_max_concurrent": s.config.MaxConcurrentJobs,
	})
}
