package publishing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
	"golang.org/x/time/rate"
)

const defaultPublishTimeout = 30 * time.Second

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks
type Dispatcher interface {
	Dispatch(ctx context.Context, campaign *domain.Campaign) (*domain.PublishResult, error)
	Supports(platform domain.Platform) bool
}

type DispatcherOption func(*PlatformDispatcher)

// WithPublisher registra o publicador de uma plataforma
func WithPublisher(platform domain.Platform, publisher Publisher) DispatcherOption {
	return func(d *PlatformDispatcher) {
		d.publishers[platform] = publisher
	}
}

// WithRateLimit limita as chamadas por minuto em cada plataforma; zero desliga o limite
func WithRateLimit(perMinute, burst int) DispatcherOption {
	return func(d *PlatformDispatcher) {
		d.ratePerMinute = perMinute
		d.burst = burst
	}
}

func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *PlatformDispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// PlatformDispatcher escolhe o publicador pela plataforma da campanha
type PlatformDispatcher struct {
	publishers    map[domain.Platform]Publisher
	limiters      map[domain.Platform]*rate.Limiter
	timeout       time.Duration
	ratePerMinute int
	burst         int
}

func NewDispatcher(opts ...DispatcherOption) *PlatformDispatcher {
	d := &PlatformDispatcher{
		publishers: make(map[domain.Platform]Publisher),
		limiters:   make(map[domain.Platform]*rate.Limiter),
		timeout:    defaultPublishTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	// limitadores criados uma vez, o mapa é somente leitura depois daqui
	if d.ratePerMinute > 0 {
		burst := d.burst
		if burst <= 0 {
			burst = 1
		}
		for platform := range d.publishers {
			d.limiters[platform] = rate.NewLimiter(rate.Every(time.Minute/time.Duration(d.ratePerMinute)), burst)
		}
	}

	return d
}

func (d *PlatformDispatcher) Supports(platform domain.Platform) bool {
	_, ok := d.publishers[platform]
	return ok
}

// Dispatch retorna erro apenas quando não existe publicador para a plataforma.
// Timeout, limite de taxa e falhas do backend viram PublishResult com status failed.
func (d *PlatformDispatcher) Dispatch(ctx context.Context, campaign *domain.Campaign) (*domain.PublishResult, error) {
	if campaign == nil {
		return nil, ErrNilCampaign
	}

	publisher, ok := d.publishers[campaign.Platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, campaign.Platform)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	platform := campaign.Platform.String()
	start := time.Now()

	result := d.publish(ctx, publisher, campaign)

	metrics.PublishDuration.WithLabelValues(platform).Observe(time.Since(start).Seconds())
	metrics.PublishAttempts.WithLabelValues(platform, string(result.Status)).Inc()

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"platform":    platform,
		"status":      result.Status,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Publicação de campanha finalizada")

	return result, nil
}

func (d *PlatformDispatcher) publish(ctx context.Context, publisher Publisher, campaign *domain.Campaign) *domain.PublishResult {
	if limiter, ok := d.limiters[campaign.Platform]; ok {
		if err := limiter.Wait(ctx); err != nil {
			return domain.NewFailedPublishResult(campaign.Platform, fmt.Errorf("limite de publicações excedido: %w", err))
		}
	}

	// cópia para que o chamador possa seguir usando a campanha após um timeout
	snapshot := *campaign

	done := make(chan *domain.PublishResult, 1)
	go func() {
		var result *domain.PublishResult
		defer func() {
			if r := recover(); r != nil {
				result = domain.NewFailedPublishResult(campaign.Platform, fmt.Errorf("panic: %v", r))
			}
			done <- result
		}()
		result = publisher.Publish(ctx, &snapshot)
	}()

	select {
	case result := <-done:
		if result == nil {
			return domain.NewFailedPublishResult(campaign.Platform, nil)
		}
		return result
	case <-ctx.Done():
		return domain.NewFailedPublishResult(campaign.Platform, fmt.Errorf("publicação excedeu o tempo limite de %s: %w", d.timeout, ctx.Err()))
	}
}
