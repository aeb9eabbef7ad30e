package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := &Client{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	return client, mr
}

func TestAnalysisCache_SetGetLatest(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	c := NewAnalysisCache(client, time.Hour)

	analysis := &domain.Analysis{
		ID:               "a1",
		CampaignID:       "c1",
		AnalysisDate:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Insights:         map[string]any{"ctr": "alto"},
		Recommendations:  []string{"Aumentar orçamento"},
		PerformanceScore: 82.5,
		ImprovementAreas: []string{"Criativos"},
		ParserVersion:    domain.AnalysisParserV1,
	}

	require.NoError(t, c.SetLatest(ctx, analysis))

	got, err := c.GetLatest(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, 82.5, got.PerformanceScore)
	assert.Equal(t, []string{"Aumentar orçamento"}, got.Recommendations)
	assert.True(t, got.AnalysisDate.Equal(analysis.AnalysisDate))

	ttl := mr.TTL("campaign:c1:analysis:latest")
	assert.Equal(t, time.Hour, ttl)
}

func TestAnalysisCache_Miss(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	got, err := NewAnalysisCache(client, time.Hour).GetLatest(context.Background(), "inexistente")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisCache_Expiration(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	c := NewAnalysisCache(client, time.Minute)
	require.NoError(t, c.SetLatest(ctx, &domain.Analysis{ID: "a1", CampaignID: "c1"}))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetLatest(ctx, "c1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalysisCache_InvalidateLatest(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()
	c := NewAnalysisCache(client, time.Hour)
	require.NoError(t, c.SetLatest(ctx, &domain.Analysis{ID: "a1", CampaignID: "c1"}))

	require.NoError(t, c.InvalidateLatest(ctx, "c1"))

	assert.False(t, mr.Exists("campaign:c1:analysis:latest"))
}

func TestAnalysisCache_NilIsNoop(t *testing.T) {
	var c *AnalysisCache = NewAnalysisCache(nil, time.Hour)
	ctx := context.Background()

	assert.Nil(t, c)
	assert.NoError(t, c.SetLatest(ctx, &domain.Analysis{CampaignID: "c1"}))
	assert.NoError(t, c.InvalidateLatest(ctx, "c1"))

	got, err := c.GetLatest(ctx, "c1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
