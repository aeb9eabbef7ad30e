package fbclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

func newTestClient(serverURL string) *FacebookClient {
	cfg := &config.Facebook{
		BaseURL:     serverURL,
		URL:         serverURL + "/v22.0",
		Version:     "v22.0",
		AccessToken: "token-teste",
		AppID:       "app",
		AppSecret:   "secret",
		AdAccountID: "123",
	}

	return &FacebookClient{
		Cfg:          cfg,
		TokenManager: NewTokenManager(cfg, http.DefaultClient),
		HTTPClient:   http.DefaultClient,
	}
}

func defaultParams() fbdomain.CreateCampaignParams {
	return fbdomain.CreateCampaignParams{
		Name:            "Spring Sale",
		Objective:       fbdomain.ObjectiveReach,
		Status:          fbdomain.StatusPaused,
		BudgetRemaining: "100",
	}
}

func TestCreateCampaign(t *testing.T) {
	t.Run("deve criar campanha e retornar o id da plataforma", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v22.0/act_123/campaigns", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "Spring Sale", r.PostForm.Get("name"))
			assert.Equal(t, "REACH", r.PostForm.Get("objective"))
			assert.Equal(t, "PAUSED", r.PostForm.Get("status"))
			assert.Equal(t, "[]", r.PostForm.Get("special_ad_categories"))
			assert.Equal(t, "100", r.PostForm.Get("budget_remaining"))
			assert.Equal(t, "token-teste", r.PostForm.Get("access_token"))

			w.Write([]byte(`{"id":"238000001"}`))
		}))
		defer server.Close()

		resp, err := newTestClient(server.URL).CreateCampaign(context.Background(), defaultParams())

		require.NoError(t, err)
		assert.Equal(t, "238000001", resp.ID)
	})

	t.Run("deve retornar a mensagem de erro da graph api", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100}}`))
		}))
		defer server.Close()

		resp, err := newTestClient(server.URL).CreateCampaign(context.Background(), defaultParams())

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid parameter")
	})

	t.Run("deve renovar o token expirado e repetir a chamada uma vez", func(t *testing.T) {
		var campaignCalls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v22.0/oauth/access_token" {
				w.Write([]byte(`{"access_token":"token-renovado","token_type":"bearer","expires_in":5184000}`))
				return
			}

			if atomic.AddInt32(&campaignCalls, 1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`))
				return
			}

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "token-renovado", r.PostForm.Get("access_token"))
			w.Write([]byte(`{"id":"238000002"}`))
		}))
		defer server.Close()

		resp, err := newTestClient(server.URL).CreateCampaign(context.Background(), defaultParams())

		require.NoError(t, err)
		assert.Equal(t, "238000002", resp.ID)
		assert.Equal(t, int32(2), atomic.LoadInt32(&campaignCalls))
	})

	t.Run("deve falhar sem conta de anúncios configurada", func(t *testing.T) {
		client := newTestClient("http://localhost")
		client.Cfg.AdAccountID = ""

		resp, err := client.CreateCampaign(context.Background(), defaultParams())

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestEnsureValidToken(t *testing.T) {
	t.Run("deve falhar sem token configurado", func(t *testing.T) {
		tm := NewTokenManager(&config.Facebook{}, nil)

		assert.Error(t, tm.EnsureValidToken(context.Background()))
	})

	t.Run("deve aceitar token sem data de expiração conhecida", func(t *testing.T) {
		tm := NewTokenManager(&config.Facebook{AccessToken: "abc"}, nil)

		assert.NoError(t, tm.EnsureValidToken(context.Background()))
	})
}

func TestCalculateTokenExpiration(t *testing.T) {
	tests := []struct {
		name      string
		expiresIn int64
		minHours  float64
		maxHours  float64
	}{
		{name: "token de 60 dias renova um dia antes", expiresIn: 60 * 24 * 3600, minHours: 59*24 - 1, maxHours: 59 * 24},
		{name: "token curto usa metade do tempo", expiresIn: 3600, minHours: 0.4, maxHours: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := CalculateTokenExpiration(tt.expiresIn).Sub(time.Now()).Hours()
			assert.GreaterOrEqual(t, hours, tt.minHours)
			assert.LessOrEqual(t, hours, tt.maxHours)
		})
	}
}
