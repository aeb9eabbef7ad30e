package publishing

import (
	"context"

	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

// InstagramPublisher usa a mesma conta de anúncios do Facebook
type InstagramPublisher struct {
	facebook Publisher
}

func NewInstagramPublisher(facebook Publisher) *InstagramPublisher {
	return &InstagramPublisher{facebook: facebook}
}

func (p *InstagramPublisher) Publish(ctx context.Context, campaign *domain.Campaign) (result *domain.PublishResult) {
	defer recoverInto(&result, domain.PlatformInstagram)

	result = p.facebook.Publish(ctx, campaign)
	if result == nil {
		return domain.NewFailedPublishResult(domain.PlatformInstagram, nil)
	}

	relabeled := *result
	relabeled.Platform = domain.PlatformInstagram
	return &relabeled
}
