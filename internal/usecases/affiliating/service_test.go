package affiliating

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var referralCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func testConfig() config.Affiliate {
	return config.Affiliate{
		DefaultCommissionRate:   0.1,
		ReferralCodeLength:      8,
		ReferralCodeMaxAttempts: 3,
		MinPayoutAmount:         50,
	}
}

func newTestService(t *testing.T) (*Service, *mocks.MockAffiliateRepository, *mocks.MockCampaignRepository) {
	ctrl := gomock.NewController(t)
	affiliateRepo := mocks.NewMockAffiliateRepository(ctrl)
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	return NewService(affiliateRepo, campaignRepo, testConfig()), affiliateRepo, campaignRepo
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("emite código de 8 caracteres maiúsculos", func(t *testing.T) {
		service, affiliateRepo, _ := newTestService(t)

		affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(nil, nil)
		affiliateRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		affiliate, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "  Maria  "})

		require.NoError(t, err)
		assert.Regexp(t, referralCodePattern, affiliate.ReferralCode)
		assert.Equal(t, "Maria", affiliate.Name)
		assert.Equal(t, 0.1, affiliate.CommissionRate)
		assert.Equal(t, domain.AffiliateStatusActive, affiliate.Status)
		assert.Equal(t, 7, affiliate.UserID)
		assert.NotEmpty(t, affiliate.ID)
	})

	t.Run("segundo cadastro do mesmo usuário é conflito", func(t *testing.T) {
		service, affiliateRepo, _ := newTestService(t)

		affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(&domain.Affiliate{ID: "aff-1"}, nil)

		_, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "Maria"})

		assert.ErrorIs(t, err, ErrAffiliateAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)

		var affErr *AffiliateError
		require.ErrorAs(t, err, &affErr)
		assert.Equal(t, apiErrors.ErrAffiliateAlreadyExists, affErr.Code)
	})

	t.Run("cadastro concorrente detectado pela constraint é conflito", func(t *testing.T) {
		service, affiliateRepo, _ := newTestService(t)

		affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(nil, nil)
		affiliateRepo.EXPECT().Create(ctx, gomock.Any()).Return(repository.ErrAffiliateUserTaken)

		_, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "Maria"})

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("colisão de código sorteia outro candidato", func(t *testing.T) {
		service, affiliateRepo, _ := newTestService(t)
		codes := []string{"AAAAAAAA", "BBBBBBBB"}
		service.generateCode = func(int) (string, error) {
			code := codes[0]
			codes = codes[1:]
			return code, nil
		}

		var tried []string
		affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(nil, nil)
		affiliateRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Affiliate) error {
			tried = append(tried, a.ReferralCode)
			if a.ReferralCode == "AAAAAAAA" {
				return repository.ErrReferralCodeTaken
			}
			return nil
		}).Times(2)

		affiliate, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "Maria"})

		require.NoError(t, err)
		assert.Equal(t, "BBBBBBBB", affiliate.ReferralCode)
		assert.Equal(t, []string{"AAAAAAAA", "BBBBBBBB"}, tried)
	})

	t.Run("tentativas esgotadas retornam conflito", func(t *testing.T) {
		service, affiliateRepo, _ := newTestService(t)

		affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(nil, nil)
		affiliateRepo.EXPECT().Create(ctx, gomock.Any()).Return(repository.ErrReferralCodeTaken).Times(3)

		_, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "Maria"})

		assert.ErrorIs(t, err, ErrReferralCodeExhausted)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("nome acima do limite é erro de validação", func(t *testing.T) {
		service, _, _ := newTestService(t)
		longName := make([]byte, 256)
		for i := range longName {
			longName[i] = 'a'
		}

		_, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: string(longName)})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("taxa de comissão fora do intervalo é erro de validação", func(t *testing.T) {
		service, _, _ := newTestService(t)
		rate := 1.5

		_, err := service.Register(ctx, 7, &domain.RegisterAffiliateRequest{Name: "Maria", CommissionRate: &rate})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_GetByUser(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, _ := newTestService(t)

	affiliateRepo.EXPECT().GetByUserID(ctx, 1).Return(&domain.Affiliate{ID: "aff-1"}, nil)
	affiliateRepo.EXPECT().GetByUserID(ctx, 2).Return(nil, nil)
	affiliateRepo.EXPECT().GetByUserID(ctx, 3).Return(nil, errors.New("db"))

	affiliate, err := service.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "aff-1", affiliate.ID)

	_, err = service.GetByUser(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.GetByUser(ctx, 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GetByReferralCode_Normalizes(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, _ := newTestService(t)

	affiliateRepo.EXPECT().GetByReferralCode(ctx, "AB12CD34").Return(&domain.Affiliate{ID: "aff-1"}, nil)

	affiliate, err := service.GetByReferralCode(ctx, " ab12cd34 ")

	require.NoError(t, err)
	assert.Equal(t, "aff-1", affiliate.ID)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, _ := newTestService(t)

	name := "Novo Nome"
	status := domain.AffiliateStatusSuspended
	affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(&domain.Affiliate{
		ID:            "aff-1",
		Name:          "Antigo",
		Status:        domain.AffiliateStatusActive,
		TotalEarnings: 42,
		ReferralCode:  "AAAAAAAA",
	}, nil)
	affiliateRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Affiliate) error {
		assert.Equal(t, "Novo Nome", a.Name)
		assert.Equal(t, domain.AffiliateStatusSuspended, a.Status)
		assert.Equal(t, 42.0, a.TotalEarnings)
		assert.Equal(t, "AAAAAAAA", a.ReferralCode)
		return nil
	})

	affiliate, err := service.Update(ctx, 7, &domain.UpdateAffiliateRequest{Name: &name, Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "Novo Nome", affiliate.Name)
}

func TestService_Update_InvalidStatus(t *testing.T) {
	service, _, _ := newTestService(t)
	status := domain.AffiliateStatus("banned")

	_, err := service.Update(context.Background(), 7, &domain.UpdateAffiliateRequest{Status: &status})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_UpdateByID(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, _ := newTestService(t)

	rate := 0.25
	status := domain.AffiliateStatusInactive
	affiliateRepo.EXPECT().GetByID(ctx, "aff-2").Return(&domain.Affiliate{
		ID:             "aff-2",
		UserID:         9,
		CommissionRate: 0.1,
		Status:         domain.AffiliateStatusActive,
		TotalEarnings:  10,
	}, nil)
	affiliateRepo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *domain.Affiliate) error {
		assert.Equal(t, "aff-2", a.ID)
		assert.Equal(t, 0.25, a.CommissionRate)
		assert.Equal(t, domain.AffiliateStatusInactive, a.Status)
		assert.Equal(t, 10.0, a.TotalEarnings)
		return nil
	})

	affiliate, err := service.UpdateByID(ctx, "aff-2", &domain.UpdateAffiliateRequest{CommissionRate: &rate, Status: &status})

	require.NoError(t, err)
	assert.Equal(t, 9, affiliate.UserID)
}

func TestService_UpdateByID_NotFound(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, _ := newTestService(t)
	affiliateRepo.EXPECT().GetByID(ctx, "aff-x").Return(nil, nil)

	name := "X"
	_, err := service.UpdateByID(ctx, "aff-x", &domain.UpdateAffiliateRequest{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_CreditEarnings_RejectsInvalidAmounts(t *testing.T) {
	service, _, _ := newTestService(t)

	for _, amount := range []float64{0, -1} {
		_, err := service.CreditEarnings(context.Background(), "aff-1", amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestService_CreditEarnings_NotFound(t *testing.T) {
	service, affiliateRepo, _ := newTestService(t)
	affiliateRepo.EXPECT().IncrementEarnings(gomock.Any(), "aff-x", 10.0).Return(0.0, repository.ErrRecordNotFound)

	_, err := service.CreditEarnings(context.Background(), "aff-x", 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// earningsStore simula o UPDATE atômico do banco
type earningsStore struct {
	repository.AffiliateRepository
	mu    sync.Mutex
	total float64
}

func (s *earningsStore) IncrementEarnings(_ context.Context, _ string, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total += amount
	return s.total, nil
}

func TestService_CreditEarnings_ConcurrentCreditsSum(t *testing.T) {
	store := &earningsStore{}
	service := NewService(store, nil, testConfig())

	amounts := []float64{10, 20.5, 3.25, 7, 100, 0.25, 9.75, 49.25}
	expected := 0.0
	for _, a := range amounts {
		expected += a
	}

	var wg sync.WaitGroup
	for _, a := range amounts {
		wg.Add(1)
		go func(amount float64) {
			defer wg.Done()
			_, err := service.CreditEarnings(context.Background(), "aff-1", amount)
			assert.NoError(t, err)
		}(a)
	}
	wg.Wait()

	assert.InDelta(t, expected, store.total, 1e-9)
}

func TestService_ListCampaigns(t *testing.T) {
	ctx := context.Background()
	service, affiliateRepo, campaignRepo := newTestService(t)

	affiliateRepo.EXPECT().GetByUserID(ctx, 7).Return(&domain.Affiliate{ID: "aff-1"}, nil)
	campaignRepo.EXPECT().
		List(ctx, domain.CampaignFilter{AffiliateID: "aff-1"}, domain.Pagination{Limit: 10}).
		Return([]*domain.Campaign{{ID: "cmp-1"}}, nil)

	campaigns, err := service.ListCampaigns(ctx, 7, domain.Pagination{Limit: 10})

	require.NoError(t, err)
	assert.Len(t, campaigns, 1)
}
