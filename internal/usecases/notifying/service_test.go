package notifying

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/repository/mocks"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Notify(t *testing.T) {
	t.Run("grava e entrega ao vivo", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockNotificationRepository(ctrl)
		service := NewService(repo, NewHub(2))
		sub := service.Subscribe(7)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		service.Notify(context.Background(), &domain.Notification{
			UserID: 7,
			Type:   domain.NotificationCampaignPublished,
			Title:  "Campanha publicada",
		})

		got := <-sub.Events()
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, domain.NotificationCampaignPublished, got.Type)
	})

	t.Run("falha ao gravar ainda entrega", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockNotificationRepository(ctrl)
		service := NewService(repo, NewHub(2))
		sub := service.Subscribe(7)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		service.Notify(context.Background(), &domain.Notification{UserID: 7})

		assert.Len(t, sub.Events(), 1)
	})

	t.Run("notificação nula é ignorada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockNotificationRepository(ctrl)

		NewService(repo, NewHub(1)).Notify(context.Background(), nil)
	})
}

func TestService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	service := NewService(repo, NewHub(1))

	repo.EXPECT().MarkRead(gomock.Any(), 7, "n1").Return(true, nil)
	repo.EXPECT().MarkRead(gomock.Any(), 7, "n2").Return(false, nil)

	require.NoError(t, service.MarkRead(context.Background(), 7, "n1"))

	err := service.MarkRead(context.Background(), 7, "n2")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListAndMarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockNotificationRepository(ctrl)
	service := NewService(repo, NewHub(1))

	pagination := domain.Pagination{Skip: 0, Limit: 10}
	repo.EXPECT().ListByUserID(gomock.Any(), 7, true, pagination).Return([]*domain.Notification{{ID: "n1"}}, nil)
	repo.EXPECT().MarkAllRead(gomock.Any(), 7).Return(int64(3), nil)

	list, err := service.List(context.Background(), 7, true, pagination)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	count, err := service.MarkAllRead(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
