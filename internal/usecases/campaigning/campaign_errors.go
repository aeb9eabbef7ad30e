package campaigning

import (
	"fmt"

	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/publishing"
)

// Erros específicos para o contexto de campanhas
var (
	ErrCampaignNotFound         = fmt.Errorf("campaign not found: %w", domain.ErrNotFound)
	ErrAnalysisNotFound         = fmt.Errorf("campaign has no analysis yet: %w", domain.ErrNotFound)
	ErrUnsupportedPlatform      = publishing.ErrUnsupportedPlatform
	ErrBudgetBelowMinimum       = fmt.Errorf("budget below configured minimum: %w", domain.ErrValidation)
	ErrInvalidDateRange         = fmt.Errorf("end date before start date: %w", domain.ErrValidation)
	ErrCampaignCompleted        = fmt.Errorf("completed campaign cannot change status: %w", domain.ErrValidation)
	ErrCampaignAlreadyPublished = fmt.Errorf("campaign already published: %w", domain.ErrConflict)
	ErrPublishInProgress        = fmt.Errorf("campaign publish already in progress: %w", domain.ErrConflict)
)

// CampaignError é um erro com contexto adicional para campanhas
type CampaignError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CampaignID string // ID da campanha envolvida (quando aplicável)
	Details    any    // Detalhes adicionais
}

func (e *CampaignError) Error() string {
	if msg, ok := e.Details.(string); ok && msg != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), msg)
	}
	return e.Err.Error()
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

func NewCampaignError(err error, code string, details any) *CampaignError {
	return &CampaignError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCampaignErrorWithID(err error, code string, campaignID string, details any) *CampaignError {
	return &CampaignError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
