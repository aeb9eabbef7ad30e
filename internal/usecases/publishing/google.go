package publishing

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const budgetNameSuffix = "_budget"

var microsPerUnit = decimal.NewFromInt(1_000_000)

type GooglePublisher struct {
	client googleads.Client

	mu sync.Mutex
	// orçamentos criados cuja campanha falhou, por ID de campanha; reaproveitados na próxima tentativa
	pendingBudgets map[string]pendingBudget
}

type pendingBudget struct {
	resourceName string
	amountMicros int64
}

func NewGooglePublisher(client googleads.Client) *GooglePublisher {
	return &GooglePublisher{
		client:         client,
		pendingBudgets: make(map[string]pendingBudget),
	}
}

// Publish cria primeiro o orçamento e depois a campanha de pesquisa que o referencia.
// Se a campanha falhar o orçamento já existe no Google: o nome do recurso vai nos detalhes da falha
// e é reaproveitado na próxima publicação da mesma campanha com o mesmo valor.
func (p *GooglePublisher) Publish(ctx context.Context, campaign *domain.Campaign) (result *domain.PublishResult) {
	defer recoverInto(&result, domain.PlatformGoogle)

	if campaign == nil {
		return domain.NewFailedPublishResult(domain.PlatformGoogle, ErrNilCampaign)
	}

	micros := BudgetMicros(campaign.Budget)
	logger := logrus.WithFields(logrus.Fields{
		"campaign_id":   campaign.ID,
		"amount_micros": micros,
	})

	budgetResource, reused := p.takePendingBudget(campaign.ID, micros)
	if !reused {
		var err error
		budgetResource, err = p.client.CreateCampaignBudget(ctx, campaign.Name+budgetNameSuffix, micros)
		if err != nil {
			logger.WithError(err).Warn("Falha ao criar orçamento no Google Ads")
			return domain.NewFailedPublishResult(domain.PlatformGoogle, fmt.Errorf("criar orçamento: %w", err))
		}
	} else {
		logger.WithField("budget_resource_name", budgetResource).Info("Reaproveitando orçamento de tentativa anterior")
	}

	campaignResource, err := p.client.CreateCampaign(ctx, campaign.Name, budgetResource)
	if err != nil {
		logger.WithError(err).WithField("budget_resource_name", budgetResource).Warn("Falha ao criar campanha no Google Ads")
		p.keepPendingBudget(campaign.ID, pendingBudget{resourceName: budgetResource, amountMicros: micros})

		failed := domain.NewFailedPublishResult(domain.PlatformGoogle, fmt.Errorf("criar campanha: %w", err))
		failed.Details = map[string]any{
			"budget_resource_name": budgetResource,
			"amount_micros":        micros,
		}
		return failed
	}

	return domain.NewCreatedPublishResult(domain.PlatformGoogle, campaignResource, map[string]any{
		"budget_resource_name":     budgetResource,
		"amount_micros":            micros,
		"advertising_channel_type": googleads.ChannelTypeSearch,
	})
}

// takePendingBudget só devolve o orçamento se o valor não mudou desde a tentativa anterior
func (p *GooglePublisher) takePendingBudget(campaignID string, micros int64) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	budget, ok := p.pendingBudgets[campaignID]
	if !ok {
		return "", false
	}
	delete(p.pendingBudgets, campaignID)

	if budget.amountMicros != micros {
		return "", false
	}
	return budget.resourceName, true
}

func (p *GooglePublisher) keepPendingBudget(campaignID string, budget pendingBudget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingBudgets[campaignID] = budget
}

// BudgetMicros converte unidades monetárias em micros, truncando a parte fracionária
func BudgetMicros(budget float64) int64 {
	return decimal.NewFromFloat(budget).Mul(microsPerUnit).IntPart()
}
