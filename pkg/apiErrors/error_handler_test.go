package apiErrors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		expectedStatus int
	}{
		{name: "conflito de afiliado", code: ErrAffiliateAlreadyExists, expectedStatus: http.StatusConflict},
		{name: "campanha não encontrada", code: ErrCampaignNotFound, expectedStatus: http.StatusNotFound},
		{name: "validação de campos", code: ErrFieldValidation, expectedStatus: http.StatusUnprocessableEntity},
		{name: "código desconhecido vira 500", code: "XYZ_999", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "mensagem", map[string]string{"campo": "valor"})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, "mensagem", body.Message)
		})
	}
}

func TestCodeFromDomain(t *testing.T) {
	assert.Equal(t, ErrFieldValidation, CodeFromDomain(fmt.Errorf("x: %w", domain.ErrValidation)))
	assert.Equal(t, ErrExternalService, CodeFromDomain(domain.ErrExternalBackend))
	assert.Equal(t, ErrInternalServer, CodeFromDomain(fmt.Errorf("qualquer")))
}
