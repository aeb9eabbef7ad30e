package fbclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	fbdomain "github.com/vfg2006/affiliate-campaign-api/infrastructure/integrator/facebook/domain"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

// ErrTokenRenewed indica que a chamada falhou por token expirado, mas o token já foi renovado
var ErrTokenRenewed = errors.New("token expirado e renovado, por favor tente novamente")

const refreshInterval = 23 * time.Hour

// TokenManager gerencia o token de acesso da Graph API
type TokenManager struct {
	cfg        *config.Facebook
	mu         sync.RWMutex
	httpClient *http.Client
}

func NewTokenManager(cfg *config.Facebook, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &TokenManager{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// AccessToken retorna o token atual para uso nas requisições
func (tm *TokenManager) AccessToken() string {
	tm.mu.RLock()
	defer tm.mu.RUnlock()

	return tm.cfg.AccessToken
}

// StartAutoRefresh renova o token periodicamente até o contexto ser cancelado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	if tm.AccessToken() == "" {
		logrus.Warn("Token do Facebook não configurado, renovação automática desativada")
		return
	}

	if err := tm.InitiateToken(ctx); err != nil {
		logrus.Errorf("Erro ao iniciar o token: %v", err)
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token do Facebook")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(1 * time.Hour)
			} else {
				logrus.Info("Renovação periódica do token concluída com sucesso")
				ticker.Reset(refreshInterval)
			}
		case <-ctx.Done():
			logrus.Info("Encerrando renovação periódica do token")
			return
		}
	}
}

// InitiateToken obtém um token de longa duração a partir do token de curta duração
func (tm *TokenManager) InitiateToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cfg.LongLivedToken != "" {
		return nil
	}

	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient,
		tm.cfg.AccessToken,
		tm.cfg.AppID,
		tm.cfg.AppSecret,
		tm.cfg.BaseURL,
		tm.cfg.Version,
	)
	if err != nil {
		return fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	tm.cfg.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)
	tm.cfg.AccessToken = tm.cfg.LongLivedToken

	logrus.Infof("Token de longa duração inicializado com sucesso. Expira em: %s",
		tm.cfg.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// RefreshToken obtém um novo token de longa duração a partir do atual
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.cfg.TokenExpiresAt.IsZero() && time.Until(tm.cfg.TokenExpiresAt) < 1*time.Hour {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient,
		tm.cfg.AccessToken,
		tm.cfg.AppID,
		tm.cfg.AppSecret,
		tm.cfg.BaseURL,
		tm.cfg.Version,
	)
	if err != nil {
		if containsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente. É necessário reautorizar")
			return fmt.Errorf("o token de acesso expirou e não pode ser renovado automaticamente: %w", err)
		}

		return fmt.Errorf("erro ao obter novo token de longa duração: %w", err)
	}

	tm.cfg.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)
	tm.cfg.AccessToken = tm.cfg.LongLivedToken

	logrus.Infof("Token de longa duração atualizado com sucesso. Expira em: %s",
		tm.cfg.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// EnsureValidToken renova o token quando faltam menos de 24 horas para expirar
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	tm.mu.RLock()
	token := tm.cfg.AccessToken
	expiresAt := tm.cfg.TokenExpiresAt
	tm.mu.RUnlock()

	if token == "" {
		return errors.New("token de acesso do facebook não configurado")
	}

	// sem data de expiração conhecida o token é usado como veio da configuração
	if expiresAt.IsZero() {
		return nil
	}

	if time.Until(expiresAt) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken(ctx)
	}

	return nil
}

// ParseErrorResponse tenta parsear um erro da Graph API
func ParseErrorResponse(body []byte) (*fbdomain.ErrorResponse, error) {
	var errorResp fbdomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse lê o corpo da resposta e trata erros de token expirado
func (tm *TokenManager) HandleResponse(ctx context.Context, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	errorResp, parseErr := ParseErrorResponse(body)
	expired := (parseErr == nil && errorResp.IsTokenExpired()) || containsTokenExpirationMessage(string(body))
	if expired {
		logrus.Warnf("Token expirado detectado pela Graph API. Status: %d", resp.StatusCode)

		if refreshErr := tm.RefreshToken(ctx); refreshErr != nil {
			return nil, fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
		}

		return nil, ErrTokenRenewed
	}

	if parseErr == nil && errorResp.Error.Message != "" {
		return nil, fmt.Errorf("graph api: %s (código %d)", errorResp.Error.Message, errorResp.Error.Code)
	}

	return nil, fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", resp.StatusCode, string(body))
}

func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
