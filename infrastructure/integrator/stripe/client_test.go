package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v76"
)

func newTestClient(server *httptest.Server) *Client {
	backend := stripego.GetBackendWithConfig(stripego.APIBackend, &stripego.BackendConfig{
		URL:               stripego.String(server.URL),
		HTTPClient:        server.Client(),
		MaxNetworkRetries: stripego.Int64(0),
		LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
	})

	return NewClient("sk_test_123", &stripego.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
}

func TestClient_Transfer(t *testing.T) {
	t.Run("deve criar transferência em centavos", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/transfers", r.URL.Path)
			assert.Equal(t, "tx-1", r.Header.Get("Idempotency-Key"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "1250", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "acct_123", r.PostForm.Get("destination"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"tr_123","object":"transfer","amount":1250,"currency":"usd"}`))
		}))
		defer server.Close()

		id, err := newTestClient(server).Transfer(context.Background(), TransferRequest{
			DestinationAccount: "acct_123",
			Amount:             12.5,
			Currency:           "USD",
			IdempotencyKey:     "tx-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "tr_123", id)
	})

	t.Run("deve propagar erro do stripe", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such destination: 'acct_x'"}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server).Transfer(context.Background(), TransferRequest{
			DestinationAccount: "acct_x",
			Amount:             10,
			Currency:           "usd",
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No such destination")
	})

	t.Run("deve falhar sem chave configurada", func(t *testing.T) {
		_, err := NewClient("", nil).Transfer(context.Background(), TransferRequest{DestinationAccount: "acct_1", Amount: 1})

		assert.ErrorIs(t, err, ErrPayoutsDisabled)
	})
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount   float64
		expected int64
	}{
		{amount: 10, expected: 1000},
		{amount: 0.1, expected: 10},
		{amount: 19.99, expected: 1999},
		{amount: 0.005, expected: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToMinorUnits(tt.amount))
	}
}
