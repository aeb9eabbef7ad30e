package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/api/handler"
	"github.com/vfg2006/affiliate-campaign-api/internal/api/handler/router"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/campaigning"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/commissioning"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa as dependências expostas pela API
type Services struct {
	DB            handler.Pinger
	Authenticator authenticating.Authenticator
	Affiliates    affiliating.Registry
	Ledger        commissioning.Ledger
	Orchestrator  campaigning.Orchestrator
	Notifications notifying.NotificationService
	CronJobs      handler.CronJobServices
}

type Server struct {
	httpServer *http.Server
	onShutdown []func()
}

func New(cfg *config.Config, services Services, onShutdown ...func()) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.DB)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Affiliates(services.Affiliates, services.Ledger)...),
		router.WithRoutes(handler.Campaigns(handler.CampaignDeps{
			Orchestrator: services.Orchestrator,
			Affiliates:   services.Affiliates,
		})...),
		router.WithRoutes(handler.Notifications(services.Notifications, cfg.Cors.AllowedOrigins)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		onShutdown: onShutdown,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para de aceitar requisições e depois executa as rotinas de limpeza na ordem de registro
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	for _, fn := range s.onShutdown {
		fn()
	}

	return nil
}
