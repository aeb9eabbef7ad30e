package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "código de indicação repetido",
			err:      &pq.Error{Code: pqUniqueViolation, Constraint: "affiliates_referral_code_key"},
			expected: ErrReferralCodeTaken,
		},
		{
			name:     "usuário já afiliado",
			err:      &pq.Error{Code: pqUniqueViolation, Constraint: "affiliates_user_id_key"},
			expected: ErrAffiliateUserTaken,
		},
		{
			name:     "email repetido",
			err:      &pq.Error{Code: pqUniqueViolation, Constraint: "users_email_key"},
			expected: ErrEmailTaken,
		},
		{
			name:     "erro embrulhado",
			err:      fmt.Errorf("insert: %w", &pq.Error{Code: pqUniqueViolation, Constraint: "affiliates_referral_code_key"}),
			expected: ErrReferralCodeTaken,
		},
		{
			name:     "constraint desconhecida",
			err:      &pq.Error{Code: pqUniqueViolation, Constraint: "campaigns_pkey"},
			expected: nil,
		},
		{
			name:     "outra violação no mesmo campo",
			err:      &pq.Error{Code: "23503", Constraint: "affiliates_user_id_key"},
			expected: nil,
		},
		{
			name:     "erro que não é do postgres",
			err:      errors.New("connection reset"),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, translateUniqueViolation(tt.err))
		})
	}
}
