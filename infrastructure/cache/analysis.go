package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const latestAnalysisKey = "campaign:%s:analysis:latest"

// AnalysisCache guarda a análise mais recente de cada campanha.
// Um AnalysisCache nil é válido e se comporta como cache sempre vazio.
type AnalysisCache struct {
	client *Client
	ttl    time.Duration
}

func NewAnalysisCache(client *Client, ttl time.Duration) *AnalysisCache {
	if client == nil {
		return nil
	}

	return &AnalysisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AnalysisCache) SetLatest(ctx context.Context, analysis *domain.Analysis) error {
	if c == nil || analysis == nil {
		return nil
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	return c.client.Redis.Set(ctx, fmt.Sprintf(latestAnalysisKey, analysis.CampaignID), payload, c.ttl).Err()
}

// GetLatest retorna nil, nil quando não há entrada no cache
func (c *AnalysisCache) GetLatest(ctx context.Context, campaignID string) (*domain.Analysis, error) {
	if c == nil {
		return nil, nil
	}

	payload, err := c.client.Redis.Get(ctx, fmt.Sprintf(latestAnalysisKey, campaignID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequests.WithLabelValues("analysis", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, err
	}

	metrics.CacheRequests.WithLabelValues("analysis", "hit").Inc()

	return &analysis, nil
}

func (c *AnalysisCache) InvalidateLatest(ctx context.Context, campaignID string) error {
	if c == nil {
		return nil
	}

	return c.client.Redis.Del(ctx, fmt.Sprintf(latestAnalysisKey, campaignID)).Err()
}
