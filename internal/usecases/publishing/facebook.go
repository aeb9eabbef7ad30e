package publishing

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"
	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/fbclient"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

type FacebookPublisher struct {
	client fbclient.Client
}

func NewFacebookPublisher(client fbclient.Client) *FacebookPublisher {
	return &FacebookPublisher{client: client}
}

// Publish cria a campanha pausada com objetivo de alcance e o orçamento sem conversão
func (p *FacebookPublisher) Publish(ctx context.Context, campaign *domain.Campaign) (result *domain.PublishResult) {
	defer recoverInto(&result, domain.PlatformFacebook)

	if campaign == nil {
		return domain.NewFailedPublishResult(domain.PlatformFacebook, ErrNilCampaign)
	}

	params := fbdomain.CreateCampaignParams{
		Name:                campaign.Name,
		Objective:           fbdomain.ObjectiveReach,
		Status:              fbdomain.StatusPaused,
		SpecialAdCategories: []string{},
		BudgetRemaining:     strconv.FormatFloat(campaign.Budget, 'f', -1, 64),
	}

	resp, err := p.client.CreateCampaign(ctx, params)
	if err != nil {
		logrus.WithError(err).WithField("campaign_id", campaign.ID).Warn("Falha ao criar campanha no Facebook")
		return domain.NewFailedPublishResult(domain.PlatformFacebook, err)
	}

	return domain.NewCreatedPublishResult(domain.PlatformFacebook, resp.ID, map[string]any{
		"objective":        params.Objective,
		"status":           params.Status,
		"budget_remaining": params.BudgetRemaining,
	})
}
