package handler

import (
	"errors"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/campaigning"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logrus.WithError(err).Debug("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

// parsePagination lê skip e limit da query; valores ausentes ficam com o padrão
func parsePagination(r *http.Request) (domain.Pagination, error) {
	pagination := domain.Pagination{}
	query := r.URL.Query()

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return pagination, validation.Field("skip", "gte", "0", "skip deve ser um inteiro não negativo")
		}
		pagination.Skip = skip
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > domain.MaxPageLimit {
			return pagination, validation.Field("limit", "lte", strconv.Itoa(domain.MaxPageLimit), "limit deve estar entre 1 e "+strconv.Itoa(domain.MaxPageLimit))
		}
		pagination.Limit = limit
	}

	return pagination.Normalize(), nil
}

// handleServiceError traduz erros dos casos de uso para a resposta padronizada
func handleServiceError(w http.ResponseWriter, err error, fallbackMessage string) {
	var (
		campaignErr  *campaigning.CampaignError
		affiliateErr *affiliating.AffiliateError
		authErr      *authenticating.AuthError
	)

	switch {
	case errors.As(err, &campaignErr):
		apiErrors.WriteError(w, campaignErr.Code, campaignErr.Error(), errorDetails(campaignErr.Details))
		return
	case errors.As(err, &affiliateErr):
		apiErrors.WriteError(w, affiliateErr.Code, affiliateErr.Error(), errorDetails(affiliateErr.Details))
		return
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	code := apiErrors.CodeFromDomain(err)
	if code == apiErrors.ErrInternalServer {
		logrus.WithError(err).Error(fallbackMessage)
		apiErrors.WriteError(w, code, fallbackMessage, nil)
		return
	}

	if fields := validation.Details(err); len(fields) > 0 {
		apiErrors.WriteError(w, code, err.Error(), fields)
		return
	}
	apiErrors.WriteError(w, code, err.Error(), nil)
}

// a mensagem em texto já vai no campo message
func errorDetails(details any) any {
	if _, ok := details.(string); ok {
		return nil
	}
	return details
}
