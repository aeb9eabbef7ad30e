package googleads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

// TokenSource troca o refresh token por access tokens e guarda o último até perto de expirar
type TokenSource struct {
	cfg        *config.GoogleAds
	httpClient *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenSource(cfg *config.GoogleAds, httpClient *http.Client) *TokenSource {
	return &TokenSource{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Until(ts.expiresAt) > time.Minute {
		return ts.token, nil
	}

	if ts.cfg.RefreshToken == "" {
		return "", fmt.Errorf("refresh token do google ads não configurado")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("client_id", ts.cfg.ClientID)
	form.Add("client_secret", ts.cfg.ClientSecret)
	form.Add("refresh_token", ts.cfg.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao obter access token do google ads: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status_code", resp.StatusCode).Error("googleads: falha ao renovar access token")
		return "", fmt.Errorf("erro ao obter access token. Status: %d, Resposta: %s", resp.StatusCode, body)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token retornado pela API é vazio")
	}

	ts.token = tokenResp.AccessToken
	ts.expiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)

	return ts.token, nil
}
