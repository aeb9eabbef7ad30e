package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeAnalysis     = "analysis"
	CronJobTypePublishRetry = "publish-retry"
	CronJobTypeAll          = "all"
)

// SyncJob é o contrato comum dos agendadores expostos para execução manual
type SyncJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	CampaignAnalysisSync SyncJob
	PublishRetrySync     SyncJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		// a rodada continua depois que a resposta é enviada
		ctx := context.WithoutCancel(r.Context())

		started := map[string]bool{}
		switch cronType {
		case CronJobTypeAnalysis:
			if services.CampaignAnalysisSync == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de análise periódica não disponível", nil)
				return
			}
			started[CronJobTypeAnalysis] = services.CampaignAnalysisSync.TriggerManualSync(ctx)

		case CronJobTypePublishRetry:
			if services.PublishRetrySync == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de republicação não disponível", nil)
				return
			}
			started[CronJobTypePublishRetry] = services.PublishRetrySync.TriggerManualSync(ctx)

		case CronJobTypeAll:
			if services.CampaignAnalysisSync != nil {
				started[CronJobTypeAnalysis] = services.CampaignAnalysisSync.TriggerManualSync(ctx)
			}
			if services.PublishRetrySync != nil {
				started[CronJobTypePublishRetry] = services.PublishRetrySync.TriggerManualSync(ctx)
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: analysis, publish-retry, all", nil)
			return
		}

		logrus.WithField("type", cronType).Info("Execução manual de cron job solicitada")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada",
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.CampaignAnalysisSync != nil {
			status[CronJobTypeAnalysis] = services.CampaignAnalysisSync.GetStatus()
		}
		if services.PublishRetrySync != nil {
			status[CronJobTypePublishRetry] = services.PublishRetrySync.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
