package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/affiliating"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/campaigning"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

// CampaignDeps agrupa os serviços usados pelas rotas de campanha
type CampaignDeps struct {
	Orchestrator campaigning.Orchestrator
	Affiliates   affiliating.Registry
}

// resolveAffiliateID devolve o afiliado do usuário; administradores podem agir por outro via ?affiliate_id
func resolveAffiliateID(r *http.Request, registry affiliating.Registry, claims *domain.Claims) (string, error) {
	if middleware.IsAdmin(claims.UserRoleID) {
		if id := r.URL.Query().Get("affiliate_id"); id != "" {
			return id, nil
		}
	}

	affiliate, err := registry.GetByUser(r.Context(), claims.UserID)
	if err != nil {
		return "", err
	}
	return affiliate.ID, nil
}

// loadOwnedCampaign busca a campanha do path e confere se pertence ao usuário
func loadOwnedCampaign(w http.ResponseWriter, r *http.Request, deps CampaignDeps) (*domain.Campaign, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	campaign, err := deps.Orchestrator.GetCampaign(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "Erro ao buscar campanha")
		return nil, false
	}

	if middleware.IsAdmin(claims.UserRoleID) {
		return campaign, true
	}

	affiliate, err := deps.Affiliates.GetByUser(r.Context(), claims.UserID)
	if err != nil || affiliate.ID != campaign.AffiliateID {
		apiErrors.WriteError(w, apiErrors.ErrCampaignForbidden, "Campanha pertence a outro afiliado", nil)
		return nil, false
	}

	return campaign, true
}

func CreateCampaign(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCampaignRequest
		if !decodeBody(w, r, &req) {
			return
		}

		affiliateID, err := resolveAffiliateID(r, deps.Affiliates, claims)
		if err != nil {
			handleServiceError(w, err, "Erro ao identificar afiliado")
			return
		}

		campaign, err := deps.Orchestrator.CreateCampaign(r.Context(), affiliateID, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao criar campanha")
			return
		}

		writeJSON(w, http.StatusCreated, campaign)
	}
}

func ListCampaigns(deps CampaignDeps) http.HandlerFunc {
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

		filter, err := parseCampaignFilter(r)
		if err != nil {
			handleServiceError(w, err, "Filtro inválido")
			return
		}

		if !middleware.IsAdmin(claims.UserRoleID) {
			affiliate, err := deps.Affiliates.GetByUser(r.Context(), claims.UserID)
			if err != nil {
				handleServiceError(w, err, "Erro ao identificar afiliado")
				return
			}
			filter.AffiliateID = affiliate.ID
		}

		campaigns, err := deps.Orchestrator.ListCampaigns(r.Context(), filter, pagination)
		if err != nil {
			handleServiceError(w, err, "Erro ao listar campanhas")
			return
		}

		writeJSON(w, http.StatusOK, campaigns)
	}
}

func parseCampaignFilter(r *http.Request) (domain.CampaignFilter, error) {
	query := r.URL.Query()
	filter := domain.CampaignFilter{
		AffiliateID:   query.Get("affiliate_id"),
		Status:        domain.CampaignStatus(query.Get("status")),
		PublishStatus: domain.PublishStatus(query.Get("publish_status")),
	}

	if raw := query.Get("platform"); raw != "" {
		platform, ok := domain.ParsePlatform(raw)
		if !ok {
			return filter, validation.Field("platform", "oneof", "facebook instagram google", "platform deve ser um de: facebook, instagram, google")
		}
		filter.Platform = platform
	}

	return filter, nil
}

func GetCampaign(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, campaign)
	}
}

func UpdateCampaign(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		var req domain.UpdateCampaignRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := deps.Orchestrator.UpdateCampaign(r.Context(), campaign.ID, &req)
		if err != nil {
			handleServiceError(w, err, "Erro ao atualizar campanha")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

func UpdateCampaignMetrics(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		var metrics map[string]any
		if !decodeBody(w, r, &metrics) {
			return
		}

		updated, err := deps.Orchestrator.UpdatePerformanceMetrics(r.Context(), campaign.ID, metrics)
		if err != nil {
			handleServiceError(w, err, "Erro ao atualizar métricas")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// PublishCampaign agenda nova tentativa; o resultado chega por notificação
func PublishCampaign(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		scheduled, err := deps.Orchestrator.PublishCampaign(r.Context(), campaign.ID)
		if err != nil {
			handleServiceError(w, err, "Erro ao agendar publicação")
			return
		}

		writeJSON(w, http.StatusAccepted, scheduled)
	}
}

func AnalyzeCampaign(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		analysis, err := deps.Orchestrator.AnalyzeCampaign(r.Context(), campaign.ID)
		if err != nil {
			handleServiceError(w, err, "Erro ao analisar campanha")
			return
		}

		writeJSON(w, http.StatusCreated, analysis)
	}
}

func GetLatestAnalysis(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		analysis, err := deps.Orchestrator.GetLatestAnalysis(r.Context(), campaign.ID)
		if err != nil {
			handleServiceError(w, err, "Erro ao buscar análise")
			return
		}

		writeJSON(w, http.StatusOK, analysis)
	}
}

func ListAnalyses(deps CampaignDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaign, ok := loadOwnedCampaign(w, r, deps)
		if !ok {
			return
		}

		pagination, err := parsePagination(r)
		if err != nil {
			handleServiceError(w, err, "Paginação inválida")
			return
		}

		analyses, err := deps.Orchestrator.ListAnalyses(r.Context(), campaign.ID, pagination)
		if err != nil {
			handleServiceError(w, err, "Erro ao listar análises")
			return
		}

		writeJSON(w, http.StatusOK, analyses)
	}
}
