package fbclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CreateCampaign cria a campanha na conta de anúncios configurada.
// Se o token expirou e foi renovado, a chamada é repetida uma única vez.
func (c *FacebookClient) CreateCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (*fbdomain.CreateCampaignResponse, error) {
	resp, err := c.createCampaign(ctx, params)
	if errors.Is(err, ErrTokenRenewed) {
		return c.createCampaign(ctx, params)
	}

	return resp, err
}

func (c *FacebookClient) createCampaign(ctx context.Context, params fbdomain.CreateCampaignParams) (*fbdomain.CreateCampaignResponse, error) {
	if err := c.EnsureValidToken(ctx); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	if c.Cfg.AdAccountID == "" {
		return nil, errors.New("facebook ad account id não configurado")
	}

	categories, err := json.Marshal(params.SpecialAdCategories)
	if err != nil {
		return nil, err
	}
	if params.SpecialAdCategories == nil {
		categories = []byte("[]")
	}

	form := url.Values{}
	form.Add("name", params.Name)
	form.Add("objective", params.Objective)
	form.Add("status", params.Status)
	form.Add("special_ad_categories", string(categories))
	form.Add("budget_remaining", params.BudgetRemaining)
	form.Add("access_token", c.TokenManager.AccessToken())

	endpoint := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.URL, c.Cfg.AdAccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.TokenManager.HandleResponse(ctx, resp)
	if err != nil {
		return nil, err
	}

	var response fbdomain.CreateCampaignResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, err
	}

	if response.ID == "" {
		return nil, errors.New("graph api não retornou o id da campanha")
	}

	return &response, nil
}
