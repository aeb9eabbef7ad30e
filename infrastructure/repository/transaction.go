package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const (
	transactionsTable = "transactions"
)

//go:generate mockgen -source=transaction.go -destination=mocks/transaction_mock.go -package=mocks
type TransactionRepository interface {
	Create(ctx context.Context, transaction *domain.Transaction) error
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, externalID *string) error
	ListByAffiliateID(ctx context.Context, affiliateID string, pagination domain.Pagination) ([]*domain.Transaction, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	query, args, err := squirrel.
		Insert(transactionsTable).
		Columns("id", "affiliate_id", "amount", "currency", "type", "status", "external_id", "description").
		Values(
			transaction.ID,
			transaction.AffiliateID,
			transaction.Amount,
			transaction.Currency,
			transaction.Type,
			transaction.Status,
			transaction.ExternalID,
			transaction.Description,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&transaction.CreatedAt, &transaction.UpdatedAt); err != nil {
		return errors.Wrap(err, "erro ao registrar transação")
	}

	return nil
}

func (r *transactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus, externalID *string) error {
	queryBuilder := squirrel.
		Update(transactionsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if externalID != nil {
		queryBuilder = queryBuilder.Set("external_id", *externalID)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar transação")
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *transactionRepository) ListByAffiliateID(ctx context.Context, affiliateID string, pagination domain.Pagination) ([]*domain.Transaction, error) {
	pagination = pagination.Normalize()

	query, args, err := squirrel.
		Select("id", "affiliate_id", "amount", "currency", "type", "status", "external_id", "description", "created_at", "updated_at").
		From(transactionsTable).
		Where(squirrel.Eq{"affiliate_id": affiliateID}).
		OrderBy("created_at DESC").
		Offset(uint64(pagination.Skip)).
		Limit(uint64(pagination.Limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar transações")
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction := &domain.Transaction{}
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AffiliateID,
			&transaction.Amount,
			&transaction.Currency,
			&transaction.Type,
			&transaction.Status,
			&transaction.ExternalID,
			&transaction.Description,
			&transaction.CreatedAt,
			&transaction.UpdatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}
