package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

func TestStruct(t *testing.T) {
	description := strings.Repeat("a", 1001)
	rate := 1.5

	tests := []struct {
		name       string
		payload    any
		wantFields []string
	}{
		{
			name:    "campanha válida",
			payload: domain.CreateCampaignRequest{Name: "Spring Sale", Budget: 100, Platform: "google"},
		},
		{
			name:       "campanha sem nome e com descrição longa",
			payload:    domain.CreateCampaignRequest{Budget: 100, Platform: "google", Description: &description},
			wantFields: []string{"name", "description"},
		},
		{
			name:       "plataforma acima do limite",
			payload:    domain.CreateCampaignRequest{Name: "x", Budget: 100, Platform: strings.Repeat("p", 51)},
			wantFields: []string{"platform"},
		},
		{
			name:       "afiliado com taxa de comissão acima de 100%",
			payload:    domain.RegisterAffiliateRequest{Name: "Ana", CommissionRate: &rate},
			wantFields: []string{"commission_rate"},
		},
		{
			name:       "moeda com tamanho errado",
			payload:    domain.PostCommissionRequest{SaleAmount: 10, Currency: "US"},
			wantFields: []string{"currency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.payload)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			fields := make([]string, 0)
			for _, f := range Details(err) {
				fields = append(fields, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestField(t *testing.T) {
	err := Field("budget", "gte", "10", "budget deve ser maior ou igual a 10")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "budget deve ser maior ou igual a 10", err.Error())
	require.Len(t, Details(err), 1)
	assert.Equal(t, "budget", Details(err)[0].Field)
}
