package publishing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

var (
	ErrUnsupportedPlatform = fmt.Errorf("plataforma não suportada: %w", domain.ErrValidation)
	ErrNilCampaign         = errors.New("campanha não informada")
)

// Publisher cria a campanha em uma plataforma externa.
// Falhas do backend voltam como PublishResult com status failed, nunca como erro ou panic.
//
//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks
type Publisher interface {
	Publish(ctx context.Context, campaign *domain.Campaign) *domain.PublishResult
}

// recoverInto converte um panic do adaptador em resultado de falha
func recoverInto(result **domain.PublishResult, platform domain.Platform) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"panic":    r,
		}).Error("Panic ao publicar campanha")
		*result = domain.NewFailedPublishResult(platform, fmt.Errorf("panic: %v", r))
	}
}
