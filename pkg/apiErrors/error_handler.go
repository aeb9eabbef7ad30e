package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserDisabled          = "AUTH_002" // Usuário desativado
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrFieldValidation     = "VAL_004" // Campos fora das regras

	// Afiliados
	ErrAffiliateNotFound      = "AFF_001"
	ErrAffiliateAlreadyExists = "AFF_002"
	ErrReferralCodeExhausted  = "AFF_003"
	ErrAffiliateInactive      = "AFF_004"

	// Campanhas
	ErrCampaignNotFound      = "CMP_001"
	ErrUnsupportedPlatform   = "CMP_002"
	ErrBudgetBelowMinimum    = "CMP_003"
	ErrCampaignAlreadyPublic = "CMP_004"
	ErrCampaignForbidden     = "CMP_005"

	ErrResourceNotFound     = "RES_001"
	ErrResourceConflict     = "RES_002"
	ErrAnalysisNotFound     = "ANL_001"
	ErrNotificationNotFound = "NTF_001"
	ErrPayoutFailed         = "PAY_001"

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserDisabled:          http.StatusForbidden,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusConflict,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrFieldValidation:       http.StatusUnprocessableEntity,

	ErrAffiliateNotFound:      http.StatusNotFound,
	ErrAffiliateAlreadyExists: http.StatusConflict,
	ErrReferralCodeExhausted:  http.StatusConflict,
	ErrAffiliateInactive:      http.StatusUnprocessableEntity,

	ErrCampaignNotFound:      http.StatusNotFound,
	ErrUnsupportedPlatform:   http.StatusUnprocessableEntity,
	ErrBudgetBelowMinimum:    http.StatusUnprocessableEntity,
	ErrCampaignAlreadyPublic: http.StatusConflict,
	ErrCampaignForbidden:     http.StatusForbidden,

	ErrResourceNotFound:     http.StatusNotFound,
	ErrResourceConflict:     http.StatusConflict,
	ErrAnalysisNotFound:     http.StatusNotFound,
	ErrNotificationNotFound: http.StatusNotFound,
	ErrPayoutFailed:         http.StatusBadGateway,

	ErrInternalServer:    http.StatusInternalServerError,
	ErrDatabaseOperation: http.StatusInternalServerError,
	ErrExternalService:   http.StatusBadGateway,
	ErrCommunication:     http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFromDomain escolhe um código genérico a partir da taxonomia de domínio
func CodeFromDomain(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ErrFieldValidation
	case errors.Is(err, domain.ErrNotFound):
		return ErrResourceNotFound
	case errors.Is(err, domain.ErrConflict):
		return ErrResourceConflict
	case errors.Is(err, domain.ErrExternalBackend):
		return ErrExternalService
	}
	return ErrInternalServer
}
