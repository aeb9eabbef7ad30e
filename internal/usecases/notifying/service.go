package notifying

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"github.com/vfg2006/affiliate-campaign-api/pkg/utils"
)

var ErrNotificationNotFound = fmt.Errorf("notificação não encontrada: %w", domain.ErrNotFound)

// Notifier é o canal de saída dos casos de uso; entrega sem confirmação
//
//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Notifier interface {
	Notify(ctx context.Context, notification *domain.Notification)
}

type NotificationService interface {
	Notifier
	List(ctx context.Context, userID int, unreadOnly bool, pagination domain.Pagination) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID int, id string) error
	MarkAllRead(ctx context.Context, userID int) (int64, error)
	Subscribe(userID int) *Subscription
	Unsubscribe(sub *Subscription)
}

type Service struct {
	repo repository.NotificationRepository
	hub  *Hub
}

func NewService(repo repository.NotificationRepository, hub *Hub) *Service {
	return &Service{
		repo: repo,
		hub:  hub,
	}
}

// Notify grava o histórico e depois entrega para quem está conectado.
// Falha ao gravar não impede a entrega ao vivo.
func (s *Service) Notify(ctx context.Context, notification *domain.Notification) {
	if notification == nil {
		return
	}

	if notification.ID == "" {
		notification.ID = utils.NewID()
	}

	logger := logrus.WithFields(logrus.Fields{
		"user_id":         notification.UserID,
		"notification_id": notification.ID,
		"type":            notification.Type,
	})

	if err := s.repo.Create(ctx, notification); err != nil {
		logger.WithError(err).Error("Erro ao gravar notificação")
	}

	delivered := s.hub.Publish(notification.UserID, notification)
	logger.WithField("delivered", delivered).Debug("Notificação publicada")
}

func (s *Service) List(ctx context.Context, userID int, unreadOnly bool, pagination domain.Pagination) ([]*domain.Notification, error) {
	return s.repo.ListByUserID(ctx, userID, unreadOnly, pagination)
}

func (s *Service) MarkRead(ctx context.Context, userID int, id string) error {
	updated, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}

	if !updated {
		return ErrNotificationNotFound
	}

	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) Subscribe(userID int) *Subscription {
	return s.hub.Subscribe(userID)
}

func (s *Service) Unsubscribe(sub *Subscription) {
	s.hub.Unsubscribe(sub)
}
