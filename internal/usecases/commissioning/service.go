package commissioning

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/stripe"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/metrics"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Ledger interface {
	PostCommission(ctx context.Context, affiliateID string, request *domain.PostCommissionRequest) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, affiliateID string, pagination domain.Pagination) ([]*domain.Transaction, error)
}

type Service struct {
	transactionRepo repository.TransactionRepository
	affiliates      affiliating.Registry
	payouter        stripe.Payouter
	notifier        notifying.Notifier
	cfg             config.Affiliate
}

func NewService(
	transactionRepo repository.TransactionRepository,
	affiliates affiliating.Registry,
	payouter stripe.Payouter,
	notifier notifying.Notifier,
	cfg config.Affiliate,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		affiliates:      affiliates,
		payouter:        payouter,
		notifier:        notifier,
		cfg:             cfg,
	}
}

// PostCommission registra a comissão de uma venda, credita os ganhos do afiliado e só então tenta o repasse.
// Sem conta Stripe, ou abaixo do mínimo de repasse, a transação fica pendente para pagamento manual.
// Depois do crédito nenhum erro é devolvido ao chamador, então uma nova tentativa nunca repete um repasse já feito.
func (s *Service) PostCommission(ctx context.Context, affiliateID string, request *domain.PostCommissionRequest) (*domain.Transaction, error) {
	if request == nil {
		return nil, affiliating.NewAffiliateErrorWithID(validation.Field("body", "required", "", "Corpo da requisição obrigatório"), apiErrors.ErrMissingRequiredData, affiliateID, nil)
	}

	if err := validation.Struct(request); err != nil {
		return nil, affiliating.NewAffiliateErrorWithID(err, apiErrors.ErrFieldValidation, affiliateID, validation.Details(err))
	}

	affiliate, err := s.affiliates.GetByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	if !affiliate.IsActive() {
		return nil, affiliating.NewAffiliateErrorWithID(affiliating.ErrAffiliateInactive, apiErrors.ErrAffiliateInactive, affiliateID, "Afiliado não está ativo")
	}

	amount := utils.MultiplyMoney(request.SaleAmount, affiliate.CommissionRate)
	if amount <= 0 {
		return nil, affiliating.NewAffiliateErrorWithID(affiliating.ErrInvalidAmount, apiErrors.ErrFieldValidation, affiliateID, "Comissão calculada é zero")
	}

	description := fmt.Sprintf("Comissão de %.0f%% sobre venda de %s", affiliate.CommissionRate*100, utils.FormatMoney(request.SaleAmount))
	if request.Description != nil && strings.TrimSpace(*request.Description) != "" {
		description = strings.TrimSpace(*request.Description)
	}

	transaction := &domain.Transaction{
		ID:          utils.NewID(),
		AffiliateID: affiliate.ID,
		Amount:      amount,
		Currency:    strings.ToUpper(request.Currency),
		Type:        domain.TransactionTypeCommission,
		Status:      domain.TransactionStatusPending,
		Description: &description,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, affiliating.NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, affiliateID, "Erro ao registrar transação")
	}

	logger := logrus.WithFields(logrus.Fields{
		"affiliate_id":   affiliate.ID,
		"transaction_id": transaction.ID,
		"amount":         amount,
	})

	// crédito antes do repasse: se falhar, nenhum dinheiro saiu e a transação fica marcada como falha
	total, err := s.affiliates.CreditEarnings(ctx, affiliate.ID, amount)
	if err != nil {
		logger.WithError(err).Error("Erro ao creditar ganhos, comissão não repassada")
		if updateErr := s.transactionRepo.UpdateStatus(ctx, transaction.ID, domain.TransactionStatusFailed, nil); updateErr != nil {
			logger.WithError(updateErr).Error("Erro ao marcar transação como falha")
		}
		return nil, err
	}

	// a partir daqui a comissão já foi creditada; erros do repasse só alteram o status da transação
	if s.shouldPayOut(affiliate, amount) {
		s.payOut(ctx, logger, affiliate, transaction)
	}

	metrics.CommissionsPosted.WithLabelValues(string(transaction.Status)).Inc()
	logger.WithField("status", transaction.Status).Info("Comissão registrada")

	s.notifier.Notify(ctx, &domain.Notification{
		UserID:  affiliate.UserID,
		Type:    domain.NotificationCommission,
		Title:   "Nova comissão",
		Message: fmt.Sprintf("Você recebeu %s %s de comissão.", utils.FormatMoney(amount), transaction.Currency),
		Metadata: map[string]any{
			"transaction_id": transaction.ID,
			"amount":         amount,
			"currency":       transaction.Currency,
			"status":         transaction.Status,
			"total_earnings": total,
		},
	})

	return transaction, nil
}

func (s *Service) shouldPayOut(affiliate *domain.Affiliate, amount float64) bool {
	if s.payouter == nil || affiliate.PaymentInfo == nil || strings.TrimSpace(*affiliate.PaymentInfo) == "" {
		return false
	}
	return amount >= s.cfg.MinPayoutAmount
}

// payOut transfere via Stripe; falha no repasse não desfaz a comissão
func (s *Service) payOut(ctx context.Context, logger *logrus.Entry, affiliate *domain.Affiliate, transaction *domain.Transaction) {
	transferID, err := s.payouter.Transfer(ctx, stripe.TransferRequest{
		DestinationAccount: strings.TrimSpace(*affiliate.PaymentInfo),
		Amount:             transaction.Amount,
		Currency:           transaction.Currency,
		Description:        *transaction.Description,
		IdempotencyKey:     transaction.ID,
	})

	var externalID *string
	switch {
	case errors.Is(err, stripe.ErrPayoutsDisabled):
		return
	case err != nil:
		logger.WithError(err).Warn("Falha no repasse da comissão")
		transaction.Status = domain.TransactionStatusFailed
	default:
		transaction.Status = domain.TransactionStatusCompleted
		externalID = &transferID
	}

	if err := s.transactionRepo.UpdateStatus(ctx, transaction.ID, transaction.Status, externalID); err != nil {
		logger.WithError(err).Error("Erro ao atualizar status da transação")
		return
	}
	transaction.ExternalID = externalID
}

func (s *Service) ListTransactions(ctx context.Context, affiliateID string, pagination domain.Pagination) ([]*domain.Transaction, error) {
	if _, err := s.affiliates.GetByID(ctx, affiliateID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.ListByAffiliateID(ctx, affiliateID, pagination)
	if err != nil {
		return nil, affiliating.NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, affiliateID, "Erro ao listar transações")
	}

	return transactions, nil
}
