package googleads

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Client interface {
	CreateCampaignBudget(ctx context.Context, name string, amountMicros int64) (string, error)
	CreateCampaign(ctx context.Context, name, budgetResourceName string) (string, error)
}

type GoogleAdsClient struct {
	cfg         *config.GoogleAds
	httpClient  *http.Client
	tokenSource *TokenSource
}

func NewClient(cfg *config.GoogleAds) Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	return &GoogleAdsClient{
		cfg:         cfg,
		httpClient:  httpClient,
		tokenSource: NewTokenSource(cfg, httpClient),
	}
}

// CreateCampaignBudget cria o orçamento e retorna o resource name dele
func (c *GoogleAdsClient) CreateCampaignBudget(ctx context.Context, name string, amountMicros int64) (string, error) {
	payload := mutateRequest[CampaignBudget]{
		Operations: []mutateOperation[CampaignBudget]{{
			Create: CampaignBudget{
				Name:           name,
				AmountMicros:   strconv.FormatInt(amountMicros, 10),
				DeliveryMethod: DeliveryStandard,
			},
		}},
	}

	return c.mutate(ctx, "campaignBudgets", payload)
}

// CreateCampaign cria a campanha de pesquisa pausada vinculada ao orçamento
func (c *GoogleAdsClient) CreateCampaign(ctx context.Context, name, budgetResourceName string) (string, error) {
	payload := mutateRequest[Campaign]{
		Operations: []mutateOperation[Campaign]{{
			Create: Campaign{
				Name:                   name,
				AdvertisingChannelType: ChannelTypeSearch,
				Status:                 CampaignStatusPaused,
				CampaignBudget:         budgetResourceName,
			},
		}},
	}

	return c.mutate(ctx, "campaigns", payload)
}

func (c *GoogleAdsClient) mutate(ctx context.Context, resource string, payload any) (string, error) {
	if c.cfg.CustomerID == "" {
		return "", fmt.Errorf("customer id do google ads não configurado")
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	customerID := strings.ReplaceAll(c.cfg.CustomerID, "-", "")
	endpoint := fmt.Sprintf("%s/%s/customers/%s/%s:mutate", c.cfg.BaseURL, c.cfg.Version, customerID, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("developer-token", c.cfg.DeveloperToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("resource", resource).Error("googleads: erro ao fazer a requisição")
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("google ads %s: %s (%s)", resource, errResp.Error.Message, errResp.Error.Status)
		}
		return "", fmt.Errorf("google ads %s: status %d, corpo: %s", resource, resp.StatusCode, respBody)
	}

	var mutateResp mutateResponse
	if err := json.Unmarshal(respBody, &mutateResp); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if len(mutateResp.Results) == 0 || mutateResp.Results[0].ResourceName == "" {
		return "", fmt.Errorf("google ads %s: resposta sem resource name", resource)
	}

	return mutateResp.Results[0].ResourceName, nil
}
