package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const (
	notificationsTable = "notifications"
)

//go:generate mockgen -source=notification.go -destination=mocks/notification_mock.go -package=mocks
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByUserID(ctx context.Context, userID int, unreadOnly bool, pagination domain.Pagination) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID int, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID int) (int64, error)
}

type notificationRepository struct {
	conn *postgres.Connection
}

func NewNotificationRepository(conn *postgres.Connection) NotificationRepository {
	return &notificationRepository{
		conn: conn,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	metadata, err := marshalJSONB(notification.Metadata)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(notificationsTable).
		Columns("id", "user_id", "type", "title", "message", "metadata", "read").
		Values(
			notification.ID,
			notification.UserID,
			notification.Type,
			notification.Title,
			notification.Message,
			metadata,
			notification.Read,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&notification.CreatedAt); err != nil {
		return errors.Wrap(err, "erro ao salvar notificação")
	}

	return nil
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID int, unreadOnly bool, pagination domain.Pagination) ([]*domain.Notification, error) {
	pagination = pagination.Normalize()

	queryBuilder := squirrel.
		Select("id", "user_id", "type", "title", "message", "metadata", "read", "created_at").
		From(notificationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Offset(uint64(pagination.Skip)).
		Limit(uint64(pagination.Limit)).
		PlaceholderFormat(squirrel.Dollar)

	if unreadOnly {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"read": false})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar notificações")
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		notification := &domain.Notification{}
		var metadata []byte

		if err := rows.Scan(
			&notification.ID,
			&notification.UserID,
			&notification.Type,
			&notification.Title,
			&notification.Message,
			&metadata,
			&notification.Read,
			&notification.CreatedAt,
		); err != nil {
			return nil, err
		}

		if notification.Metadata, err = unmarshalJSONB(metadata); err != nil {
			return nil, err
		}

		notifications = append(notifications, notification)
	}

	return notifications, rows.Err()
}

// MarkRead retorna false quando a notificação não existe ou pertence a outro usuário
func (r *notificationRepository) MarkRead(ctx context.Context, userID int, id string) (bool, error) {
	query, args, err := squirrel.
		Update(notificationsTable).
		Set("read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, errors.Wrap(err, "erro ao marcar notificação como lida")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int) (int64, error) {
	query, args, err := squirrel.
		Update(notificationsTable).
		Set("read", true).
		Where(squirrel.Eq{"user_id": userID, "read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao marcar notificações como lidas")
	}

	return result.RowsAffected()
}
