package fbclient

import (
	"context"
	"net/http"
	"time"

	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Client interface {
	CreateCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (*fbdomain.CreateCampaignResponse, error)
	EnsureValidToken(ctx context.Context) error
}

type FacebookClient struct {
	Cfg          *config.Facebook
	TokenManager *TokenManager
	HTTPClient   *http.Client
}

func NewClient(cfg *config.Facebook, tokenManager *TokenManager) Client {
	return &FacebookClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *FacebookClient) EnsureValidToken(ctx context.Context) error {
	return c.TokenManager.EnsureValidToken(ctx)
}
