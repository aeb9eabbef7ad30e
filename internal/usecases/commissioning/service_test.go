package commissioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/stripe"
	stripemocks "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/stripe/mocks"
	repomocks "github.com/vfg2006/affiliate-campaign-api/infrastructure/repository/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	affmocks "github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating/mocks"
	ntfmocks "github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying/mocks"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	transactionRepo *repomocks.MockTransactionRepository
	affiliates      *affmocks.MockRegistry
	payouter        *stripemocks.MockPayouter
	notifier        *ntfmocks.MockNotifier
}

func newFixture(t *testing.T) (*Service, *fixture) {
	ctrl := gomock.NewController(t)
	f := &fixture{
		transactionRepo: repomocks.NewMockTransactionRepository(ctrl),
		affiliates:      affmocks.NewMockRegistry(ctrl),
		payouter:        stripemocks.NewMockPayouter(ctrl),
		notifier:        ntfmocks.NewMockNotifier(ctrl),
	}

	service := NewService(f.transactionRepo, f.affiliates, f.payouter, f.notifier, config.Affiliate{
		MinPayoutAmount: 1,
	})

	return service, f
}

func affiliateWith(paymentInfo *string) *domain.Affiliate {
	return &domain.Affiliate{
		ID:             "aff-1",
		UserID:         7,
		CommissionRate: 0.1,
		Status:         domain.AffiliateStatusActive,
		PaymentInfo:    paymentInfo,
	}
}

func TestService_PostCommission_WithPayout(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(strPtr("acct_123")), nil)
	f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tx *domain.Transaction) error {
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)
		assert.Equal(t, 25.0, tx.Amount)
		assert.Equal(t, "USD", tx.Currency)
		return nil
	})
	f.payouter.EXPECT().Transfer(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, req stripe.TransferRequest) (string, error) {
		assert.Equal(t, "acct_123", req.DestinationAccount)
		assert.Equal(t, 25.0, req.Amount)
		assert.NotEmpty(t, req.IdempotencyKey)
		return "tr_1", nil
	})
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusCompleted, gomock.Any()).Return(nil)
	f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 25.0).Return(125.0, nil)
	f.notifier.EXPECT().Notify(ctx, gomock.Any()).Do(func(_ context.Context, n *domain.Notification) {
		assert.Equal(t, 7, n.UserID)
		assert.Equal(t, domain.NotificationCommission, n.Type)
		assert.Equal(t, 125.0, n.Metadata["total_earnings"])
	})

	tx, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 250, Currency: "usd"})

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
	require.NotNil(t, tx.ExternalID)
	assert.Equal(t, "tr_1", *tx.ExternalID)
}

func TestService_PostCommission_PayoutFailureStillCredits(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(strPtr("acct_x")), nil)
	f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.payouter.EXPECT().Transfer(ctx, gomock.Any()).Return("", errors.New("No such destination"))
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusFailed, nil).Return(nil)
	f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 1.23).Return(1.23, nil)
	f.notifier.EXPECT().Notify(ctx, gomock.Any())

	tx, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 12.34, Currency: "BRL"})

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, tx.Status)
	assert.Nil(t, tx.ExternalID)
}

func TestService_PostCommission_CreditFailureSkipsPayout(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(strPtr("acct_123")), nil)
	f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 25.0).Return(0.0, errors.New("db down"))
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusFailed, nil).Return(nil)

	tx, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 250, Currency: "USD"})

	require.Error(t, err)
	assert.Nil(t, tx)
}

func TestService_PostCommission_RetryAfterCreditFailureTransfersOnce(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)
	request := &domain.PostCommissionRequest{SaleAmount: 250, Currency: "USD"}

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(strPtr("acct_123")), nil).Times(2)
	f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 25.0).Return(0.0, errors.New("db down")),
		f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 25.0).Return(25.0, nil),
	)
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusFailed, nil).Return(nil)

	transfers := 0
	f.payouter.EXPECT().Transfer(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, _ stripe.TransferRequest) (string, error) {
		transfers++
		return "tr_1", nil
	})
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusCompleted, gomock.Any()).Return(nil)
	f.notifier.EXPECT().Notify(ctx, gomock.Any())

	_, err := service.PostCommission(ctx, "aff-1", request)
	require.Error(t, err)

	tx, err := service.PostCommission(ctx, "aff-1", request)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
	assert.Equal(t, 1, transfers)
}

func TestService_PostCommission_StatusUpdateFailureAfterTransferIsNotAnError(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(strPtr("acct_123")), nil)
	f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", 25.0).Return(25.0, nil)
	f.payouter.EXPECT().Transfer(ctx, gomock.Any()).Return("tr_1", nil)
	f.transactionRepo.EXPECT().UpdateStatus(ctx, gomock.Any(), domain.TransactionStatusCompleted, gomock.Any()).Return(errors.New("db down"))
	f.notifier.EXPECT().Notify(ctx, gomock.Any())

	tx, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 250, Currency: "USD"})

	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
}

func TestService_PostCommission_StaysPending(t *testing.T) {
	tests := []struct {
		name        string
		paymentInfo *string
		saleAmount  float64
		transferErr error
	}{
		{name: "sem conta stripe", paymentInfo: nil, saleAmount: 100},
		{name: "abaixo do mínimo de repasse", paymentInfo: strPtr("acct_1"), saleAmount: 5},
		{name: "stripe desligado", paymentInfo: strPtr("acct_1"), saleAmount: 100, transferErr: stripe.ErrPayoutsDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service, f := newFixture(t)

			f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(tt.paymentInfo), nil)
			f.transactionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
			if tt.transferErr != nil {
				f.payouter.EXPECT().Transfer(ctx, gomock.Any()).Return("", tt.transferErr)
			}
			f.affiliates.EXPECT().CreditEarnings(ctx, "aff-1", gomock.Any()).Return(10.0, nil)
			f.notifier.EXPECT().Notify(ctx, gomock.Any())

			tx, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: tt.saleAmount, Currency: "USD"})

			require.NoError(t, err)
			assert.Equal(t, domain.TransactionStatusPending, tx.Status)
		})
	}
}

func TestService_PostCommission_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("moeda inválida", func(t *testing.T) {
		service, _ := newFixture(t)

		_, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 10, Currency: "US"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("afiliado inexistente", func(t *testing.T) {
		service, f := newFixture(t)
		f.affiliates.EXPECT().GetByID(ctx, "aff-x").Return(nil, affiliating.ErrAffiliateNotFound)

		_, err := service.PostCommission(ctx, "aff-x", &domain.PostCommissionRequest{SaleAmount: 10, Currency: "USD"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("afiliado inativo", func(t *testing.T) {
		service, f := newFixture(t)
		inactive := affiliateWith(nil)
		inactive.Status = domain.AffiliateStatusInactive
		f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(inactive, nil)

		_, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 10, Currency: "USD"})

		assert.ErrorIs(t, err, affiliating.ErrAffiliateInactive)
	})

	t.Run("comissão arredonda para zero", func(t *testing.T) {
		service, f := newFixture(t)
		f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(nil), nil)

		_, err := service.PostCommission(ctx, "aff-1", &domain.PostCommissionRequest{SaleAmount: 0.01, Currency: "USD"})

		assert.ErrorIs(t, err, affiliating.ErrInvalidAmount)
	})
}

func TestService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	service, f := newFixture(t)
	pagination := domain.Pagination{Skip: 0, Limit: 10}

	f.affiliates.EXPECT().GetByID(ctx, "aff-1").Return(affiliateWith(nil), nil)
	f.transactionRepo.EXPECT().ListByAffiliateID(ctx, "aff-1", pagination).Return([]*domain.Transaction{{ID: "tx-1"}}, nil)

	transactions, err := service.ListTransactions(ctx, "aff-1", pagination)

	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "tx-1", transactions[0].ID)
}
