package repository

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation = "23505"

	affiliatesReferralCodeConstraint = "affiliates_referral_code_key"
	affiliatesUserIDConstraint       = "affiliates_user_id_key"
	usersEmailConstraint             = "users_email_key"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrReferralCodeTaken  = errors.New("referral code already in use")
	ErrAffiliateUserTaken = errors.New("user already has an affiliate")
	ErrEmailTaken         = errors.New("email already in use")
)

// uniqueViolation retorna a constraint violada quando o erro é de unicidade do Postgres
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// constraintErrors mapeia as constraints únicas conhecidas para o erro exposto aos casos de uso
var constraintErrors = map[string]error{
	affiliatesReferralCodeConstraint: ErrReferralCodeTaken,
	affiliatesUserIDConstraint:       ErrAffiliateUserTaken,
	usersEmailConstraint:             ErrEmailTaken,
}

// translateUniqueViolation devolve o erro tipado da constraint violada, ou nil se o erro não for de unicidade conhecida
func translateUniqueViolation(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return nil
	}
	return constraintErrors[constraint]
}
