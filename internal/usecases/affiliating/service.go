package affiliating

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Registry interface {
	Register(ctx context.Context, userID int, request *domain.RegisterAffiliateRequest) (*domain.Affiliate, error)
	GetByUser(ctx context.Context, userID int) (*domain.Affiliate, error)
	GetByID(ctx context.Context, id string) (*domain.Affiliate, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error)
	Update(ctx context.Context, userID int, request *domain.UpdateAffiliateRequest) (*domain.Affiliate, error)
	UpdateByID(ctx context.Context, id string, request *domain.UpdateAffiliateRequest) (*domain.Affiliate, error)
	CreditEarnings(ctx context.Context, affiliateID string, amount float64) (float64, error)
	ListCampaigns(ctx context.Context, userID int, pagination domain.Pagination) ([]*domain.Campaign, error)
}

// CodeGenerator sorteia um candidato a código de indicação
type CodeGenerator func(length int) (string, error)

type Service struct {
	affiliateRepo repository.AffiliateRepository
	campaignRepo  repository.CampaignRepository
	cfg           config.Affiliate
	generateCode  CodeGenerator
}

func NewService(
	affiliateRepo repository.AffiliateRepository,
	campaignRepo repository.CampaignRepository,
	cfg config.Affiliate,
) *Service {
	return &Service{
		affiliateRepo: affiliateRepo,
		campaignRepo:  campaignRepo,
		cfg:           cfg,
		generateCode:  utils.GenerateReferralCode,
	}
}

// Register cria o afiliado do usuário. O código de indicação é garantido pela constraint única:
// em caso de colisão um novo candidato é sorteado, até o limite de tentativas.
func (s *Service) Register(ctx context.Context, userID int, request *domain.RegisterAffiliateRequest) (*domain.Affiliate, error) {
	if request == nil {
		return nil, NewAffiliateError(validation.Field("body", "required", "", "Corpo da requisição obrigatório"), apiErrors.ErrMissingRequiredData, nil)
	}

	request.Name = strings.TrimSpace(request.Name)
	if err := validation.Struct(request); err != nil {
		return nil, NewAffiliateError(err, apiErrors.ErrFieldValidation, validation.Details(err))
	}

	existing, err := s.affiliateRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, NewAffiliateError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar afiliado")
	}
	if existing != nil {
		return nil, NewAffiliateErrorWithID(ErrAffiliateAlreadyExists, apiErrors.ErrAffiliateAlreadyExists, existing.ID, "Usuário já possui conta de afiliado")
	}

	commissionRate := s.cfg.DefaultCommissionRate
	if request.CommissionRate != nil {
		commissionRate = *request.CommissionRate
	}

	affiliate := &domain.Affiliate{
		ID:             utils.NewID(),
		UserID:         userID,
		Name:           request.Name,
		CommissionRate: commissionRate,
		Status:         domain.AffiliateStatusActive,
		TotalEarnings:  0,
		PaymentInfo:    request.PaymentInfo,
	}

	logger := logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"affiliate_id": affiliate.ID,
	})

	maxAttempts := s.cfg.ReferralCodeMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		code, err := s.generateCode(s.cfg.ReferralCodeLength)
		if err != nil {
			return nil, NewAffiliateError(err, apiErrors.ErrInternalServer, "Erro ao gerar código de indicação")
		}
		affiliate.ReferralCode = code

		err = s.affiliateRepo.Create(ctx, affiliate)
		switch {
		case err == nil:
			logger.WithField("attempts", attempt).Info("Afiliado registrado")
			return affiliate, nil
		case errors.Is(err, repository.ErrReferralCodeTaken):
			logger.WithField("attempt", attempt).Warn("Código de indicação já em uso, sorteando outro")
			continue
		case errors.Is(err, repository.ErrAffiliateUserTaken):
			return nil, NewAffiliateError(ErrAffiliateAlreadyExists, apiErrors.ErrAffiliateAlreadyExists, "Usuário já possui conta de afiliado")
		default:
			return nil, NewAffiliateError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar afiliado")
		}
	}

	logger.WithField("attempts", maxAttempts).Error("Tentativas de código de indicação esgotadas")
	return nil, NewAffiliateError(ErrReferralCodeExhausted, apiErrors.ErrReferralCodeExhausted, "Não foi possível gerar um código de indicação único")
}

func (s *Service) GetByUser(ctx context.Context, userID int) (*domain.Affiliate, error) {
	affiliate, err := s.affiliateRepo.GetByUserID(ctx, userID)
	return s.found(affiliate, err, "")
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Affiliate, error) {
	affiliate, err := s.affiliateRepo.GetByID(ctx, id)
	return s.found(affiliate, err, id)
}

func (s *Service) GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > 50 {
		return nil, NewAffiliateError(ErrAffiliateNotFound, apiErrors.ErrAffiliateNotFound, "Código de indicação inválido")
	}

	affiliate, err := s.affiliateRepo.GetByReferralCode(ctx, code)
	return s.found(affiliate, err, "")
}

func (s *Service) found(affiliate *domain.Affiliate, err error, id string) (*domain.Affiliate, error) {
	if err != nil {
		return nil, NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, id, "Erro ao consultar afiliado")
	}
	if affiliate == nil {
		return nil, NewAffiliateErrorWithID(ErrAffiliateNotFound, apiErrors.ErrAffiliateNotFound, id, "Afiliado não encontrado")
	}
	return affiliate, nil
}

// Update aplica o patch no afiliado do próprio usuário; ganhos e código de indicação não são editáveis
func (s *Service) Update(ctx context.Context, userID int, request *domain.UpdateAffiliateRequest) (*domain.Affiliate, error) {
	if err := validateUpdate(request); err != nil {
		return nil, err
	}

	affiliate, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, affiliate, request)
}

// UpdateByID é o caminho da administração para alterar qualquer afiliado, inclusive status e taxa
func (s *Service) UpdateByID(ctx context.Context, id string, request *domain.UpdateAffiliateRequest) (*domain.Affiliate, error) {
	if err := validateUpdate(request); err != nil {
		return nil, err
	}

	affiliate, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, affiliate, request)
}

func validateUpdate(request *domain.UpdateAffiliateRequest) error {
	if request == nil {
		return NewAffiliateError(validation.Field("body", "required", "", "Corpo da requisição obrigatório"), apiErrors.ErrMissingRequiredData, nil)
	}
	if err := validation.Struct(request); err != nil {
		return NewAffiliateError(err, apiErrors.ErrFieldValidation, validation.Details(err))
	}
	return nil
}

func (s *Service) applyUpdate(ctx context.Context, affiliate *domain.Affiliate, request *domain.UpdateAffiliateRequest) (*domain.Affiliate, error) {
	if request.Name != nil {
		affiliate.Name = strings.TrimSpace(*request.Name)
	}
	if request.CommissionRate != nil {
		affiliate.CommissionRate = *request.CommissionRate
	}
	if request.Status != nil {
		affiliate.Status = *request.Status
	}
	if request.PaymentInfo != nil {
		affiliate.PaymentInfo = request.PaymentInfo
	}

	if err := s.affiliateRepo.Update(ctx, affiliate); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, NewAffiliateErrorWithID(ErrAffiliateNotFound, apiErrors.ErrAffiliateNotFound, affiliate.ID, "Afiliado não encontrado")
		}
		return nil, NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, affiliate.ID, "Erro ao atualizar afiliado")
	}

	logrus.WithFields(logrus.Fields{
		"affiliate_id": affiliate.ID,
		"status":       affiliate.Status,
	}).Info("Afiliado atualizado")

	return affiliate, nil
}

// CreditEarnings é o único caminho que altera total_earnings; a soma acontece no banco em um só UPDATE
func (s *Service) CreditEarnings(ctx context.Context, affiliateID string, amount float64) (float64, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, NewAffiliateErrorWithID(ErrInvalidAmount, apiErrors.ErrFieldValidation, affiliateID, "Valor deve ser positivo")
	}

	total, err := s.affiliateRepo.IncrementEarnings(ctx, affiliateID, amount)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return 0, NewAffiliateErrorWithID(ErrAffiliateNotFound, apiErrors.ErrAffiliateNotFound, affiliateID, "Afiliado não encontrado")
		}
		return 0, NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, affiliateID, "Erro ao creditar ganhos")
	}

	logrus.WithFields(logrus.Fields{
		"affiliate_id":   affiliateID,
		"amount":         amount,
		"total_earnings": total,
	}).Info("Ganhos creditados")

	return total, nil
}

func (s *Service) ListCampaigns(ctx context.Context, userID int, pagination domain.Pagination) ([]*domain.Campaign, error) {
	affiliate, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.campaignRepo.List(ctx, domain.CampaignFilter{AffiliateID: affiliate.ID}, pagination)
	if err != nil {
		return nil, NewAffiliateErrorWithID(err, apiErrors.ErrDatabaseOperation, affiliate.ID, "Erro ao listar campanhas")
	}

	return campaigns, nil
}
