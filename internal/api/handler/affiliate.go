package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/commissioning"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
)

// ReferralResponse é a visão pública de um afiliado, sem ganhos nem dados de pagamento
type ReferralResponse struct {
	Name         string `json:"name"`
	ReferralCode string `json:"referral_code"`
}

func RegisterAffiliate(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.RegisterAffiliateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		affiliate, err := registry.Register(r.Context(), claims.UserID, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao cadastrar afiliado")
			return
		}

		writeJSON(w, http.StatusCreated, affiliate)
	}
}

func GetMyAffiliate(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		affiliate, err := registry.GetByUser(r.Context(), claims.UserID)
		if err != nil {
			handleServiceError(w, err, "Erro ao buscar afiliado")
			return
		}

		writeJSON(w, http.StatusOK, affiliate)
	}
}

func UpdateMyAffiliate(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateAffiliateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		// status e taxa de comissão só pela administração; de outro afiliado, via PUT /v1/affiliates/:id
		if !middleware.IsAdmin(claims.UserRoleID) && (req.Status != nil || req.CommissionRate != nil) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Status e taxa de comissão são definidos pela administração", nil)
			return
		}

		affiliate, err := registry.Update(r.Context(), claims.UserID, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao atualizar afiliado")
			return
		}

		writeJSON(w, http.StatusOK, affiliate)
	}
}

func ListMyCampaigns(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		pagination, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, "Paginação inválida")
			return
		}

		campaigns, err := registry.ListCampaigns(r.Context(), claims.UserID, pagination)
		if err != nil {
			handleServiceError(w, err, "Erro ao listar campanhas")
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	}
}

func GetAffiliate(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		affiliate, err := registry.GetByID(r.Context(), id)
		if err != nil {
			handleServiceError(w, err, "Erro ao buscar afiliado")
			return
		}

		writeJSON(w, http.StatusOK, affiliate)
	}
}

// UpdateAffiliate é a edição de backoffice de qualquer afiliado, incluindo status e taxa de comissão
func UpdateAffiliate(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.UpdateAffiliateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		affiliate, err := registry.UpdateByID(r.Context(), id, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao atualizar afiliado")
			return
		}

		writeJSON(w, http.StatusOK, affiliate)
	}
}

// GetReferral resolve um código de indicação; rota pública
func GetReferral(registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")

		affiliate, err := registry.GetByReferralCode(r.Context(), code)
		if err != nil {
			handleServiceError(w, err, "Erro ao buscar código de indicação")
			return
		}

		if !affiliate.IsActive() {
			apiErrors.WriteError(w, apiErrors.ErrAffiliateNotFound, "Código de indicação inativo", nil)
			return
		}

		writeJSON(w, http.StatusOK, ReferralResponse{
			Name:         affiliate.Name,
			ReferralCode: affiliate.ReferralCode,
		})
	}
}

func PostCommission(ledger commissioning.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req domain.PostCommissionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		transaction, err := ledger.PostCommission(r.Context(), id, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao registrar comissão")
			return
		}

		writeJSON(w, http.StatusCreated, transaction)
	}
}

// ListCommissions é liberado ao próprio afiliado e à administração
func ListCommissions(ledger commissioning.Ledger, registry affiliating.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if !middleware.IsAdmin(claims.UserRoleID) {
			own, err := registry.GetByUser(r.Context(), claims.UserID)
			if err != nil || own.ID != id {
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Acesso negado às comissões de outro afiliado", nil)
				return
			}
		}

		pagination, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, "Paginação inválida")
			return
		}

		transactions, err := ledger.ListTransactions(r.Context(), id, pagination)
		if err != nil {
			handleServiceError(w, err, "Erro ao listar comissões")
			return
		}

		writeJSON(w, http.StatusOK, transactions)
	}
}
