package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latência das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PublishAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_publish_attempts_total",
			Help: "Tentativas de publicação de campanha por plataforma e resultado",
		},
		[]string{"platform", "status"}, // created, failed
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_publish_duration_seconds",
			Help:    "Duração das chamadas de publicação por plataforma",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"platform"},
	)

	AnalysesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_analyses_total",
			Help: "Análises geradas, separando as degradadas",
		},
		[]string{"result"}, // ok, degraded
	)

	CommissionsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affiliate_commissions_total",
			Help: "Comissões registradas por status da transação",
		},
		[]string{"status"},
	)

	NotificationSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notification_subscribers_active",
		Help: "Assinaturas de notificação abertas",
	})

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Consultas ao cache por tipo e resultado",
		},
		[]string{"cache_type", "result"}, // hit, miss
	)
)
