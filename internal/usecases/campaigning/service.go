package campaigning

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/analyzing"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/publishing"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

// tempo para gravar o resultado de uma publicação mesmo durante o desligamento
const persistResultTimeout = 10 * time.Second

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Orchestrator interface {
	CreateCampaign(ctx context.Context, affiliateID string, request *domain.CreateCampaignRequest) (*domain.Campaign, error)
	ApplyPublishResult(ctx context.Context, campaignID string, result *domain.PublishResult) (*domain.Campaign, error)
	PublishCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	AnalyzeCampaign(ctx context.Context, campaignID string) (*domain.Analysis, error)
	GetLatestAnalysis(ctx context.Context, campaignID string) (*domain.Analysis, error)
	ListAnalyses(ctx context.Context, campaignID string, pagination domain.Pagination) ([]*domain.Analysis, error)
	ListCampaigns(ctx context.Context, filter domain.CampaignFilter, pagination domain.Pagination) ([]*domain.Campaign, error)
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, request *domain.UpdateCampaignRequest) (*domain.Campaign, error)
	UpdatePerformanceMetrics(ctx context.Context, campaignID string, metrics map[string]any) (*domain.Campaign, error)
}

// AnalysisCache é opcional; sem Redis o serviço lê direto do banco
type AnalysisCache interface {
	SetLatest(ctx context.Context, analysis *domain.Analysis) error
	GetLatest(ctx context.Context, campaignID string) (*domain.Analysis, error)
}

type noopCache struct{}

func (noopCache) SetLatest(context.Context, *domain.Analysis) error { return nil }
func (noopCache) GetLatest(context.Context, string) (*domain.Analysis, error) {
	return nil, nil
}

type Service struct {
	campaignRepo repository.CampaignRepository
	analysisRepo repository.AnalysisRepository
	affiliates   affiliating.Registry
	dispatcher   publishing.Dispatcher
	analyzer     analyzing.Analyzer
	notifier     notifying.Notifier
	cache        AnalysisCache
	cfg          config.Campaign

	// contexto de vida do serviço; publicações não dependem da requisição que as criou
	baseCtx  context.Context
	wg       sync.WaitGroup
	inflight sync.Map
	now      func() time.Time
}

func NewService(
	ctx context.Context,
	campaignRepo repository.CampaignRepository,
	analysisRepo repository.AnalysisRepository,
	affiliates affiliating.Registry,
	dispatcher publishing.Dispatcher,
	analyzer analyzing.Analyzer,
	notifier notifying.Notifier,
	cache AnalysisCache,
	cfg config.Campaign,
) *Service {
	if cache == nil {
		cache = noopCache{}
	}

	return &Service{
		campaignRepo: campaignRepo,
		analysisRepo: analysisRepo,
		affiliates:   affiliates,
		dispatcher:   dispatcher,
		analyzer:     analyzer,
		notifier:     notifier,
		cache:        cache,
		cfg:          cfg,
		baseCtx:      ctx,
		now:          time.Now,
	}
}

// CreateCampaign grava a campanha como rascunho e agenda a publicação sem esperar por ela
func (s *Service) CreateCampaign(ctx context.Context, affiliateID string, request *domain.CreateCampaignRequest) (*domain.Campaign, error) {
	if request == nil {
		return nil, NewCampaignError(validation.Field("body", "required", "", "Corpo da requisição obrigatório"), apiErrors.ErrMissingRequiredData, nil)
	}

	request.Name = strings.TrimSpace(request.Name)
	if err := validation.Struct(request); err != nil {
		return nil, NewCampaignError(err, apiErrors.ErrFieldValidation, validation.Details(err))
	}

	platform, ok := domain.ParsePlatform(request.Platform)
	if !ok {
		return nil, NewCampaignError(ErrUnsupportedPlatform, apiErrors.ErrUnsupportedPlatform, "Plataformas suportadas: facebook, instagram, google")
	}

	if err := s.validateBudget(request.Budget); err != nil {
		return nil, err
	}

	if err := validateDates(request.StartDate, request.EndDate); err != nil {
		return nil, err
	}

	affiliate, err := s.affiliates.GetByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	if !affiliate.IsActive() {
		return nil, NewCampaignError(affiliating.ErrAffiliateInactive, apiErrors.ErrAffiliateInactive, "Afiliado não está ativo")
	}

	campaign := &domain.Campaign{
		ID:                 utils.NewID(),
		AffiliateID:        affiliate.ID,
		Name:               request.Name,
		Description:        request.Description,
		Budget:             request.Budget,
		Status:             domain.CampaignStatusDraft,
		Platform:           platform,
		TargetAudience:     request.TargetAudience,
		StartDate:          request.StartDate,
		EndDate:            request.EndDate,
		PerformanceMetrics: request.PerformanceMetrics,
		PublishStatus:      domain.PublishStatusPending,
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, NewCampaignError(err, apiErrors.ErrDatabaseOperation, "Erro ao criar campanha")
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":  campaign.ID,
		"affiliate_id": affiliate.ID,
		"platform":     platform,
	}).Info("Campanha criada, publicação agendada")

	s.schedulePublish(campaign)

	return campaign, nil
}

func (s *Service) validateBudget(budget float64) error {
	if budget < s.cfg.MinBudget {
		return NewCampaignError(ErrBudgetBelowMinimum, apiErrors.ErrBudgetBelowMinimum, []validation.FieldError{{
			Field:   "budget",
			Rule:    "gte",
			Param:   utils.FormatMoney(s.cfg.MinBudget),
			Message: "budget deve ser maior ou igual a " + utils.FormatMoney(s.cfg.MinBudget),
		}})
	}
	return nil
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return NewCampaignError(ErrInvalidDateRange, apiErrors.ErrFieldValidation, "Data final anterior à data inicial")
	}
	return nil
}

func (s *Service) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao buscar campanha")
	}

	if campaign == nil {
		return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
	}

	return campaign, nil
}

func (s *Service) ListCampaigns(ctx context.Context, filter domain.CampaignFilter, pagination domain.Pagination) ([]*domain.Campaign, error) {
	campaigns, err := s.campaignRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, NewCampaignError(err, apiErrors.ErrDatabaseOperation, "Erro ao listar campanhas")
	}

	return campaigns, nil
}

// UpdateCampaign aplica o patch; plataforma e estado de publicação não são editáveis por aqui
func (s *Service) UpdateCampaign(ctx context.Context, campaignID string, request *domain.UpdateCampaignRequest) (*domain.Campaign, error) {
	if request == nil {
		return nil, NewCampaignError(validation.Field("body", "required", "", "Corpo da requisição obrigatório"), apiErrors.ErrMissingRequiredData, nil)
	}

	if err := validation.Struct(request); err != nil {
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrFieldValidation, campaignID, validation.Details(err))
	}

	campaign, err := s.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		campaign.Name = strings.TrimSpace(*request.Name)
	}
	if request.Description != nil {
		campaign.Description = request.Description
	}
	if request.Budget != nil {
		if err := s.validateBudget(*request.Budget); err != nil {
			return nil, err
		}
		campaign.Budget = *request.Budget
	}
	if request.Status != nil && *request.Status != campaign.Status {
		if campaign.Status.IsTerminal() {
			return nil, NewCampaignErrorWithID(ErrCampaignCompleted, apiErrors.ErrFieldValidation, campaignID, "Campanha concluída não muda de status")
		}
		campaign.Status = *request.Status
	}
	if request.TargetAudience != nil {
		campaign.TargetAudience = request.TargetAudience
	}
	if request.StartDate != nil {
		campaign.StartDate = request.StartDate
	}
	if request.EndDate != nil {
		campaign.EndDate = request.EndDate
	}

	if err := validateDates(campaign.StartDate, campaign.EndDate); err != nil {
		return nil, err
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
		}
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao atualizar campanha")
	}

	return campaign, nil
}

// UpdatePerformanceMetrics substitui o payload de métricas vindo da plataforma
func (s *Service) UpdatePerformanceMetrics(ctx context.Context, campaignID string, metrics map[string]any) (*domain.Campaign, error) {
	if metrics == nil {
		metrics = map[string]any{}
	}

	if err := s.campaignRepo.UpdateMetrics(ctx, campaignID, metrics); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, NewCampaignErrorWithID(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "Campanha não encontrada")
		}
		return nil, NewCampaignErrorWithID(err, apiErrors.ErrDatabaseOperation, campaignID, "Erro ao atualizar métricas")
	}

	return s.GetCampaign(ctx, campaignID)
}

// Wait bloqueia até as publicações em andamento terminarem
func (s *Service) Wait() {
	s.wg.Wait()
}

// notifyOwner resolve o usuário dono da campanha; falhas só são registradas
func (s *Service) notifyOwner(ctx context.Context, campaign *domain.Campaign, notification *domain.Notification) {
	affiliate, err := s.affiliates.GetByID(ctx, campaign.AffiliateID)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Warn("Não foi possível notificar o dono da campanha")
		return
	}

	notification.UserID = affiliate.UserID
	s.notifier.Notify(ctx, notification)
}
