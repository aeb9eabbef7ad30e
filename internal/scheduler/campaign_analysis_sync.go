package scheduler

import (
	"context"
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

// CampaignAnalysisSyncService reanalisa periodicamente as campanhas ativas
type CampaignAnalysisSyncService struct {
	scheduler    *gocron.Scheduler
	config       config.CampaignAnalysisSync
	campaignRepo repository.CampaignRepository
	orchestrator campaigning.Orchestrator
	state        syncState
	sleep        func(time.Duration)
}

func NewCampaignAnalysisSyncService(
	campaignRepo repository.CampaignRepository,
	orchestrator campaigning.Orchestrator,
	appConfig *config.Config,
) *CampaignAnalysisSyncService {
	cfg := appConfig.CampaignAnalysisSync

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         cfg.CronSchedule,
		"request_delay_seconds": cfg.RequestDelaySeconds,
		"max_concurrent_jobs":   cfg.MaxConcurrentJobs,
		"sync_enabled":          cfg.Enabled,
	}).Info("Configuração do agendador de análise de campanhas carregada")

	return &CampaignAnalysisSyncService{
		scheduler:    gocron.NewScheduler(time.UTC),
		config:       cfg,
		campaignRepo: campaignRepo,
		orchestrator: orchestrator,
		sleep:        time.Sleep,
	}
}

// Start agenda a rotina e para o agendador quando o contexto terminar
func (s *CampaignAnalysisSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Análise periódica de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de análise de campanhas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncActiveCampaigns(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar análise de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de análise de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CampaignAnalysisSyncService) syncActiveCampaigns(ctx context.Context) {
	if !s.state.tryStart() {
		logrus.Info("Análise de campanhas já em andamento, ignorando")
		return
	}

	startTime := time.Now()
	processed, failed := 0, 0
	defer func() { s.state.finish(processed, failed) }()

	campaigns, err := listAllCampaigns(ctx, s.campaignRepo, domain.CampaignFilter{Status: domain.CampaignStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar campanhas ativas para análise")
		return
	}

	if len(campaigns) == 0 {
		logrus.Info("Nenhuma campanha ativa para analisar")
		return
	}

	semaphore := make(chan struct{}, maxConcurrent(s.config.MaxConcurrentJobs))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, campaign := range campaigns {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(c *domain.Campaign) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			ok := s.analyzeCampaign(ctx, c)

			mu.Lock()
			processed++
			if !ok {
				failed++
			}
			mu.Unlock()

			// espaçamento entre chamadas ao backend de IA
			if s.config.RequestDelaySeconds > 0 {
				s.sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
			}
		}(campaign)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"campaigns": processed,
		"failed":    failed,
	}).Info("Análise periódica de campanhas concluída")
}

// analyzeCampaign retorna false quando a análise não foi gravada ou saiu degradada
func (s *CampaignAnalysisSyncService) analyzeCampaign(ctx context.Context, campaign *domain.Campaign) bool {
	analysis, err := s.orchestrator.AnalyzeCampaign(ctx, campaign.ID)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Error("Erro ao analisar campanha")
		return false
	}

	return !analysis.Degraded
}

// TriggerManualSync dispara uma rodada fora do agendamento
func (s *CampaignAnalysisSyncService) TriggerManualSync(ctx context.Context) bool {
	if s.state.isRunning() {
		logrus.Info("Análise de campanhas já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando análise manual de campanhas")
	go s.syncActiveCampaigns(ctx)
	return true
}

func (s *CampaignAnalysisSyncService) GetStatus() map[string]any {
	return s.state.snapshot(map[string]any{
		"sync_enabled":         s.config.Enabled,
		"sync_cron":            s.config.CronSchedule,
		"sync_max_concurrent":  s.config.MaxConcurrentJobs,
		"sync_request_delay_s": s.config.RequestDelaySeconds,
	})
}
