package affiliating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

// Erros específicos para o contexto de afiliados
var (
	ErrAffiliateNotFound      = fmt.Errorf("affiliate not found: %w", domain.ErrNotFound)
	ErrAffiliateAlreadyExists = fmt.Errorf("user already has an affiliate account: %w", domain.ErrConflict)
	ErrReferralCodeExhausted  = fmt.Errorf("could not issue a unique referral code: %w", domain.ErrConflict)
	ErrAffiliateInactive      = fmt.Errorf("affiliate is not active: %w", domain.ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("amount must be a positive finite number: %w", domain.ErrValidation)

	ErrDatabaseOperation = errors.New("database operation error")
)

// AffiliateError é um erro com contexto adicional para afiliados
type AffiliateError struct {
	Err         error  // Erro base
	Code        string // Código de erro para API
	AffiliateID string // ID do afiliado envolvido (quando aplicável)
	Details     any    // Detalhes adicionais
}

func (e *AffiliateError) Error() string {
	if msg, ok := e.Details.(string); ok && msg != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), msg)
	}
	return e.Err.Error()
}

func (e *AffiliateError) Unwrap() error {
	return e.Err
}

func NewAffiliateError(err error, code string, details any) *AffiliateError {
	return &AffiliateError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewAffiliateErrorWithID(err error, code string, affiliateID string, details any) *AffiliateError {
	return &AffiliateError{
		Err:         err,
		Code:        code,
		AffiliateID: affiliateID,
		Details:     details,
	}
}
