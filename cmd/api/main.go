package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/cache"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/fbclient"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/openai"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/stripe"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/api"
	"github.com/vfg2006/affiliate-campaign-api/internal/api/handler"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/scheduler"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/analyzing"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/campaigning"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/commissioning"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/publishing"
	"github.com/vfg2006/affiliate-campaign-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	redisClient := redisconn(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(pgConn)
	affiliateRepo := repository.NewAffiliateRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	analysisRepo := repository.NewAnalysisRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	notificationRepo := repository.NewNotificationRepository(pgConn)

	tokenManager := fbclient.NewTokenManager(&cfg.Facebook, nil)
	go tokenManager.StartAutoRefresh(ctx)

	facebookPublisher := publishing.NewFacebookPublisher(fbclient.NewClient(&cfg.Facebook, tokenManager))
	dispatcher := publishing.NewDispatcher(
		publishing.WithPublisher(domain.PlatformFacebook, facebookPublisher),
		publishing.WithPublisher(domain.PlatformInstagram, publishing.NewInstagramPublisher(facebookPublisher)),
		publishing.WithPublisher(domain.PlatformGoogle, publishing.NewGooglePublisher(googleads.NewClient(&cfg.GoogleAds))),
		publishing.WithRateLimit(cfg.Campaign.PublishRatePerMinute, cfg.Campaign.PublishBurst),
		publishing.WithTimeout(cfg.Campaign.PublishTimeout),
	)

	hub := notifying.NewHub(cfg.Notification.BufferSize)
	notificationService := notifying.NewService(notificationRepo, hub)

	affiliateService := affiliating.NewService(affiliateRepo, campaignRepo, cfg.Affiliate)
	analyzer := analyzing.NewEngine(openai.NewClient(&cfg.OpenAI))

	orchestrator := campaigning.NewService(
		ctx,
		campaignRepo,
		analysisRepo,
		affiliateService,
		dispatcher,
		analyzer,
		notificationService,
		cache.NewAnalysisCache(redisClient, cfg.Redis.AnalysisTTL),
		cfg.Campaign,
	)

	ledger := commissioning.NewService(
		transactionRepo,
		affiliateService,
		stripe.NewClient(cfg.Stripe.SecretKey, nil),
		notificationService,
		cfg.Affiliate,
	)

	authenticator := authenticating.NewService(userRepo, cfg)

	campaignAnalysisSync := scheduler.NewCampaignAnalysisSyncService(campaignRepo, orchestrator, cfg)
	publishRetrySync := scheduler.NewPublishRetrySyncService(campaignRepo, orchestrator, cfg)

	if err := campaignAnalysisSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de análise de campanhas")
	}

	if err := publishRetrySync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de republicação de campanhas")
	}

	server, err := api.New(
		cfg,
		api.Services{
			DB:            pgConn,
			Authenticator: authenticator,
			Affiliates:    affiliateService,
			Ledger:        ledger,
			Orchestrator:  orchestrator,
			Notifications: notificationService,
			CronJobs: handler.CronJobServices{
				CampaignAnalysisSync: campaignAnalysisSync,
				PublishRetrySync:     publishRetrySync,
			},
		},
		orchestrator.Wait,
		cancel,
		hub.Close,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisconn retorna nil quando o Redis não está configurado ou indisponível; a API segue sem cache
func redisconn(cfg config.Redis) *cache.Client {
	if cfg.URL == "" {
		logrus.Warn("REDIS_URL não configurada, cache de análises desativado")
		return nil
	}

	client, err := cache.NewClient(cfg.URL)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, cache de análises desativado")
		return nil
	}

	return client
}
