package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/authenticating"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
	"github.com/vfg2006/affiliate-campaign-api/pkg/validation"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := validation.Struct(req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios", validation.Details(err))
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleServiceError(w, err, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// CreateUser cadastra um usuário pelo fluxo público de registro
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user *domain.User
		if !decodeBody(w, r, &user) {
			return
		}

		if user == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome, email e senha são obrigatórios", nil)
			return
		}

		created, err := service.CreateUser(r.Context(), user)
		if err != nil {
			handleServiceError(w, err, "Erro ao criar usuário")
			return
		}

		logrus.WithField("user_id", created.ID).Info("Usuário registrado")
		writeJSON(w, http.StatusCreated, created)
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			handleServiceError(w, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func ListUsers(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUser(r.Context())
		if err != nil {
			handleServiceError(w, err, "Erro ao listar usuários")
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}
