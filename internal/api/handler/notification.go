package handler

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/usecases/notifying"
	"github.com/vfg2006/affiliate-campaign-api/pkg/apiErrors"
	"github.com/vfg2006/affiliate-campaign-api/pkg/middleware"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

func ListNotifications(service notifying.NotificationService) http.HandlerFunc {
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

		unreadOnly := r.URL.Query().Get("unread") == "true"

		notifications, err := service.List(r.Context(), claims.UserID, unreadOnly, pagination)
		if err != nil {
			handleServiceError(w, err, "Erro ao listar notificações")
			return
		}

		writeJSON(w, http.StatusOK, notifications)
	}
}

func MarkNotificationRead(service notifying.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.MarkRead(r.Context(), claims.UserID, id); err != nil {
			if errors.Is(err, notifying.ErrNotificationNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrNotificationNotFound, "Notificação não encontrada", nil)
				return
			}
			handleServiceError(w, err, "Erro ao marcar notificação como lida")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func MarkAllNotificationsRead(service notifying.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		updated, err := service.MarkAllRead(r.Context(), claims.UserID)
		if err != nil {
			handleServiceError(w, err, "Erro ao marcar notificações como lidas")
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
	}
}

func newUpgrader(allowedOrigins []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
}

// NotificationStream entrega as notificações do usuário em tempo real via websocket
func NotificationStream(service notifying.NotificationService, allowedOrigins []string) http.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)

	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Warn("Falha no upgrade para websocket")
			return
		}
		defer conn.Close()

		sub := service.Subscribe(claims.UserID)
		defer service.Unsubscribe(sub)

		logger := logrus.WithField("user_id", claims.UserID)
		logger.Info("Cliente conectado ao stream de notificações")

		// leitura só para detectar fechamento e responder aos pongs
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadLimit(512)
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(wsPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case notification, open := <-sub.Events():
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if !open {
					// buffer cheio ou hub encerrado
					conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "stream encerrado"))
					return
				}
				payload, err := json.Marshal(notification)
				if err != nil {
					logger.WithError(err).Error("Erro ao serializar notificação")
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					logger.WithError(err).Debug("Erro ao enviar notificação")
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				logger.Info("Cliente desconectado do stream de notificações")
				return
			}
		}
	}
}
