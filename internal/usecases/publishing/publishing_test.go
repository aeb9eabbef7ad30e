package publishing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
	fbmocks "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/fbclient/mocks"
	googlemocks "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/googleads/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/publishing/mocks"
	"go.uber.org/mock/gomock"
)

func newCampaign(platform domain.Platform, budget float64) *domain.Campaign {
	return &domain.Campaign{
		ID:       "cmp-1",
		Name:     "Spring Sale",
		Budget:   budget,
		Platform: platform,
		Status:   domain.CampaignStatusDraft,
	}
}

func TestFacebookPublisher_Publish(t *testing.T) {
	t.Run("sucesso retorna id da plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := fbmocks.NewMockClient(ctrl)

		client.EXPECT().
			CreateCampaign(gomock.Any(), fbdomain.CreateCampaignParams{
				Name:                "Spring Sale",
				Objective:           fbdomain.ObjectiveReach,
				Status:              fbdomain.StatusPaused,
				SpecialAdCategories: []string{},
				BudgetRemaining:     "150.5",
			}).
			Return(&fbdomain.CreateCampaignResponse{ID: "fb-123"}, nil)

		result := NewFacebookPublisher(client).Publish(context.Background(), newCampaign(domain.PlatformFacebook, 150.5))

		assert.Equal(t, domain.PublishResultCreated, result.Status)
		assert.Equal(t, "fb-123", result.PlatformID)
		assert.Equal(t, domain.PlatformFacebook, result.Platform)
		assert.True(t, result.Succeeded())
	})

	t.Run("erro do backend vira resultado de falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := fbmocks.NewMockClient(ctrl)
		client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return(nil, errors.New("invalid token"))

		result := NewFacebookPublisher(client).Publish(context.Background(), newCampaign(domain.PlatformFacebook, 100))

		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Equal(t, "invalid token", result.Error)
		assert.False(t, result.Succeeded())
	})

	t.Run("panic do cliente vira resultado de falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := fbmocks.NewMockClient(ctrl)
		client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, fbdomain.CreateCampaignParams) (*fbdomain.CreateCampaignResponse, error) {
				panic("nil map")
			})

		result := NewFacebookPublisher(client).Publish(context.Background(), newCampaign(domain.PlatformFacebook, 100))

		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Contains(t, result.Error, "nil map")
	})
}

func TestInstagramPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	facebook := mocks.NewMockPublisher(ctrl)

	campaign := newCampaign(domain.PlatformInstagram, 80)
	facebookResult := domain.NewCreatedPublishResult(domain.PlatformFacebook, "fb-9", nil)
	facebook.EXPECT().Publish(gomock.Any(), campaign).Return(facebookResult)

	result := NewInstagramPublisher(facebook).Publish(context.Background(), campaign)

	assert.Equal(t, domain.PlatformInstagram, result.Platform)
	assert.Equal(t, "fb-9", result.PlatformID)
	assert.Equal(t, domain.PlatformFacebook, facebookResult.Platform, "resultado original não deve ser alterado")
}

func TestGooglePublisher_Publish(t *testing.T) {
	t.Run("cria orçamento em micros e depois a campanha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := googlemocks.NewMockClient(ctrl)

		gomock.InOrder(
			client.EXPECT().
				CreateCampaignBudget(gomock.Any(), "Spring Sale_budget", int64(100000000)).
				Return("customers/1/campaignBudgets/2", nil),
			client.EXPECT().
				CreateCampaign(gomock.Any(), "Spring Sale", "customers/1/campaignBudgets/2").
				Return("customers/1/campaigns/3", nil),
		)

		result := NewGooglePublisher(client).Publish(context.Background(), newCampaign(domain.PlatformGoogle, 100.0))

		assert.Equal(t, domain.PublishResultCreated, result.Status)
		assert.Equal(t, "customers/1/campaigns/3", result.PlatformID)
		assert.Equal(t, int64(100000000), result.Details["amount_micros"])
	})

	t.Run("falha no orçamento não cria campanha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := googlemocks.NewMockClient(ctrl)
		client.EXPECT().CreateCampaignBudget(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("quota"))

		result := NewGooglePublisher(client).Publish(context.Background(), newCampaign(domain.PlatformGoogle, 10))

		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Contains(t, result.Error, "quota")
	})

	t.Run("falha na campanha vira resultado de falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := googlemocks.NewMockClient(ctrl)
		client.EXPECT().CreateCampaignBudget(gomock.Any(), gomock.Any(), gomock.Any()).Return("budget", nil)
		client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any(), "budget").Return("", errors.New("denied"))

		result := NewGooglePublisher(client).Publish(context.Background(), newCampaign(domain.PlatformGoogle, 10))

		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Contains(t, result.Error, "denied")
		assert.Equal(t, "budget", result.Details["budget_resource_name"])
	})

	t.Run("nova tentativa reaproveita o orçamento já criado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := googlemocks.NewMockClient(ctrl)
		client.EXPECT().CreateCampaignBudget(gomock.Any(), gomock.Any(), gomock.Any()).Return("budget", nil).Times(1)
		gomock.InOrder(
			client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any(), "budget").Return("", errors.New("denied")),
			client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any(), "budget").Return("customers/1/campaigns/3", nil),
		)

		publisher := NewGooglePublisher(client)
		campaign := newCampaign(domain.PlatformGoogle, 10)

		first := publisher.Publish(context.Background(), campaign)
		second := publisher.Publish(context.Background(), campaign)

		assert.Equal(t, domain.PublishResultFailed, first.Status)
		assert.Equal(t, domain.PublishResultCreated, second.Status)
		assert.Equal(t, "budget", second.Details["budget_resource_name"])
	})

	t.Run("orçamento alterado cria novo orçamento", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := googlemocks.NewMockClient(ctrl)
		gomock.InOrder(
			client.EXPECT().CreateCampaignBudget(gomock.Any(), gomock.Any(), int64(10000000)).Return("budget-10", nil),
			client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any(), "budget-10").Return("", errors.New("denied")),
			client.EXPECT().CreateCampaignBudget(gomock.Any(), gomock.Any(), int64(20000000)).Return("budget-20", nil),
			client.EXPECT().CreateCampaign(gomock.Any(), gomock.Any(), "budget-20").Return("customers/1/campaigns/3", nil),
		)

		publisher := NewGooglePublisher(client)

		publisher.Publish(context.Background(), newCampaign(domain.PlatformGoogle, 10))
		result := publisher.Publish(context.Background(), newCampaign(domain.PlatformGoogle, 20))

		assert.Equal(t, domain.PublishResultCreated, result.Status)
	})
}

func TestBudgetMicros(t *testing.T) {
	assert.Equal(t, int64(100000000), BudgetMicros(100.0))
	assert.Equal(t, int64(10500000), BudgetMicros(10.5))
	assert.Equal(t, int64(1234567), BudgetMicros(1.2345678))
	assert.Equal(t, int64(19990000), BudgetMicros(19.99))
}

func TestPlatformDispatcher_Dispatch(t *testing.T) {
	t.Run("encaminha para o publicador da plataforma exatamente uma vez", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		facebook := mocks.NewMockPublisher(ctrl)
		google := mocks.NewMockPublisher(ctrl)

		google.EXPECT().Publish(gomock.Any(), gomock.Any()).
			Return(domain.NewCreatedPublishResult(domain.PlatformGoogle, "g-1", nil)).
			Times(1)

		d := NewDispatcher(
			WithPublisher(domain.PlatformFacebook, facebook),
			WithPublisher(domain.PlatformGoogle, google),
		)

		result, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformGoogle, 100))

		require.NoError(t, err)
		assert.Equal(t, "g-1", result.PlatformID)
	})

	t.Run("plataforma sem publicador retorna erro explícito", func(t *testing.T) {
		d := NewDispatcher()

		result, err := d.Dispatch(context.Background(), newCampaign(domain.Platform("tiktok"), 100))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrUnsupportedPlatform)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, d.Supports("tiktok"))
	})

	t.Run("timeout vira resultado de falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		slow := mocks.NewMockPublisher(ctrl)
		release := make(chan struct{})
		defer close(release)

		slow.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, c *domain.Campaign) *domain.PublishResult {
				<-release
				return domain.NewCreatedPublishResult(domain.PlatformFacebook, "late", nil)
			}).AnyTimes()

		d := NewDispatcher(
			WithPublisher(domain.PlatformFacebook, slow),
			WithTimeout(20*time.Millisecond),
		)

		start := time.Now()
		result, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformFacebook, 100))

		require.NoError(t, err)
		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Contains(t, result.Error, "tempo limite")
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("panic do publicador vira resultado de falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		broken := mocks.NewMockPublisher(ctrl)
		broken.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *domain.Campaign) *domain.PublishResult {
				panic("boom")
			})

		d := NewDispatcher(WithPublisher(domain.PlatformGoogle, broken))

		result, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformGoogle, 100))

		require.NoError(t, err)
		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.Contains(t, result.Error, "boom")
	})

	t.Run("resultado nulo vira falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		d := NewDispatcher(WithPublisher(domain.PlatformGoogle, publisher))

		result, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformGoogle, 100))

		require.NoError(t, err)
		assert.Equal(t, domain.PublishResultFailed, result.Status)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("limite de taxa segura chamadas excedentes até o timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mocks.NewMockPublisher(ctrl)

		var calls atomic.Int32
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, *domain.Campaign) *domain.PublishResult {
				calls.Add(1)
				return domain.NewCreatedPublishResult(domain.PlatformFacebook, "ok", nil)
			}).Times(1)

		d := NewDispatcher(
			WithPublisher(domain.PlatformFacebook, publisher),
			WithRateLimit(1, 1),
			WithTimeout(50*time.Millisecond),
		)

		first, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformFacebook, 100))
		require.NoError(t, err)
		second, err := d.Dispatch(context.Background(), newCampaign(domain.PlatformFacebook, 100))
		require.NoError(t, err)

		assert.Equal(t, domain.PublishResultCreated, first.Status)
		assert.Equal(t, domain.PublishResultFailed, second.Status)
		assert.Equal(t, int32(1), calls.Load())
	})
}
