package utils

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferralCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	seen := make(map[string]struct{})
	for range 200 {
		code, err := GenerateReferralCode(8)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 190)
}

func TestNewID(t *testing.T) {
	_, err := uuid.Parse(NewID())
	assert.NoError(t, err)
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{name: "arredonda para duas casas", got: RoundWithTwoDecimalPlace(10.005), expected: 10.01},
		{name: "zero continua zero", got: RoundWithTwoDecimalPlace(0), expected: 0},
		{name: "comissão padrão", got: MultiplyMoney(199.99, 0.1), expected: 20},
		{name: "comissão sem erro de ponto flutuante", got: MultiplyMoney(0.3, 0.1), expected: 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "10.00", FormatMoney(10))
	assert.Equal(t, "0.50", FormatMoney(0.5))
}
