package googleads

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

func newTestServer(t *testing.T, tokenCalls *int32, handler http.HandlerFunc) (*httptest.Server, *GoogleAdsClient) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-teste", r.PostForm.Get("refresh_token"))
		w.Write([]byte(`{"access_token":"ya29.teste","expires_in":3600,"token_type":"Bearer"}`))
	})
	mux.HandleFunc("/", handler)

	server := httptest.NewServer(mux)

	cfg := &config.GoogleAds{
		BaseURL:        server.URL,
		Version:        "v17",
		TokenURL:       server.URL + "/token",
		CustomerID:     "123-456-7890",
		DeveloperToken: "dev-token",
		ClientID:       "client",
		ClientSecret:   "secret",
		RefreshToken:   "refresh-teste",
	}

	client := &GoogleAdsClient{
		cfg:         cfg,
		httpClient:  server.Client(),
		tokenSource: NewTokenSource(cfg, server.Client()),
	}

	return server, client
}

func TestGoogleAdsClient_CreateCampaignBudget(t *testing.T) {
	var tokenCalls int32
	server, client := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/campaignBudgets:mutate", r.URL.Path)
		assert.Equal(t, "Bearer ya29.teste", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"operations":[{"create":{"name":"Spring Sale_budget","amountMicros":"100000000","deliveryMethod":"STANDARD"}}]}`, string(body))

		w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/campaignBudgets/555"}]}`))
	})
	defer server.Close()

	resource, err := client.CreateCampaignBudget(context.Background(), "Spring Sale_budget", 100000000)

	require.NoError(t, err)
	assert.Equal(t, "customers/1234567890/campaignBudgets/555", resource)
}

func TestGoogleAdsClient_CreateCampaign(t *testing.T) {
	var tokenCalls int32
	server, client := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/campaigns:mutate", r.URL.Path)

		var payload mutateRequest[Campaign]
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Operations, 1)
		assert.Equal(t, "SEARCH", payload.Operations[0].Create.AdvertisingChannelType)
		assert.Equal(t, "PAUSED", payload.Operations[0].Create.Status)
		assert.Equal(t, "customers/1234567890/campaignBudgets/555", payload.Operations[0].Create.CampaignBudget)

		w.Write([]byte(`{"results":[{"resourceName":"customers/1234567890/campaigns/777"}]}`))
	})
	defer server.Close()

	ctx := context.Background()
	resource, err := client.CreateCampaign(ctx, "Spring Sale", "customers/1234567890/campaignBudgets/555")
	require.NoError(t, err)
	assert.Equal(t, "customers/1234567890/campaigns/777", resource)

	_, err = client.CreateCampaign(ctx, "Spring Sale", "customers/1234567890/campaignBudgets/555")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "access token deve ser reaproveitado")
}

func TestGoogleAdsClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		errContains string
	}{
		{
			name:        "erro estruturado da api",
			status:      http.StatusBadRequest,
			body:        `{"error":{"code":400,"message":"Request contains an invalid argument.","status":"INVALID_ARGUMENT"}}`,
			errContains: "invalid argument",
		},
		{
			name:        "resposta sem resultados",
			status:      http.StatusOK,
			body:        `{"results":[]}`,
			errContains: "sem resource name",
		},
		{
			name:        "erro sem corpo json",
			status:      http.StatusInternalServerError,
			body:        `boom`,
			errContains: "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokenCalls int32
			server, client := newTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer server.Close()

			_, err := client.CreateCampaignBudget(context.Background(), "x", 1)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestTokenSource_MissingRefreshToken(t *testing.T) {
	ts := NewTokenSource(&config.GoogleAds{}, http.DefaultClient)

	_, err := ts.Token(context.Background())

	assert.Error(t, err)
}
