package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/affiliate-campaign-api/internal/api/handler/router"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/commissioning"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Affiliates(registry affiliating.Registry, ledger commissioning.Ledger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/affiliate",
			Method:      http.MethodPost,
			Handler:     RegisterAffiliate(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/affiliate",
			Method:      http.MethodGet,
			Handler:     GetMyAffiliate(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/affiliate",
			Method:      http.MethodPut,
			Handler:     UpdateMyAffiliate(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/campaigns",
			Method:      http.MethodGet,
			Handler:     ListMyCampaigns(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/affiliates/:id",
			Method:      http.MethodGet,
			Handler:     GetAffiliate(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/affiliates/:id",
			Method:      http.MethodPut,
			Handler:     UpdateAffiliate(registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/affiliates/:id/commissions",
			Method:      http.MethodPost,
			Handler:     PostCommission(ledger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/affiliates/:id/commissions",
			Method:      http.MethodGet,
			Handler:     ListCommissions(ledger, registry),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:    "/v1/referrals/:code",
			Method:  http.MethodGet,
			Handler: GetReferral(registry),
		},
	}
}

func Campaigns(deps CampaignDeps) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{Path: "/v1/campaigns", Method: http.MethodPost, Handler: CreateCampaign(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns", Method: http.MethodGet, Handler: ListCampaigns(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id", Method: http.MethodGet, Handler: GetCampaign(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id", Method: http.MethodPut, Handler: UpdateCampaign(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id/metrics", Method: http.MethodPut, Handler: UpdateCampaignMetrics(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id/publish", Method: http.MethodPost, Handler: PublishCampaign(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id/analyze", Method: http.MethodPost, Handler: AnalyzeCampaign(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id/analysis", Method: http.MethodGet, Handler: GetLatestAnalysis(deps), Middlewares: allRoles},
		{Path: "/v1/campaigns/:id/analyses", Method: http.MethodGet, Handler: ListAnalyses(deps), Middlewares: allRoles},
	}
}

func Notifications(service notifying.NotificationService, allowedOrigins []string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/notifications",
			Method:      http.MethodGet,
			Handler:     ListNotifications(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/notifications/:id/read",
			Method:      http.MethodPost,
			Handler:     MarkNotificationRead(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/notifications-read-all",
			Method:      http.MethodPost,
			Handler:     MarkAllNotificationsRead(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ws/notifications",
			Method:      http.MethodGet,
			Handler:     NotificationStream(service, allowedOrigins),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
