package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const (
	affiliatesTable = "affiliates"
)

var affiliateColumns = []string{
	"id", "user_id", "name", "commission_rate", "status", "total_earnings",
	"referral_code", "payment_info", "created_at", "updated_at",
}

//go:generate mockgen -source=affiliate.go -destination=mocks/affiliate_mock.go -package=mocks
type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *domain.Affiliate) error
	GetByID(ctx context.Context, id string) (*domain.Affiliate, error)
	GetByUserID(ctx context.Context, userID int) (*domain.Affiliate, error)
	GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error)
	Update(ctx context.Context, affiliate *domain.Affiliate) error
	IncrementEarnings(ctx context.Context, id string, amount float64) (float64, error)
}

type affiliateRepository struct {
	conn *postgres.Connection
}

func NewAffiliateRepository(conn *postgres.Connection) AffiliateRepository {
	return &affiliateRepository{
		conn: conn,
	}
}

// Create insere o afiliado contando com as constraints únicas de user_id e referral_code.
// A violação de cada constraint é traduzida para um erro próprio para o chamador decidir se tenta de novo.
func (r *affiliateRepository) Create(ctx context.Context, affiliate *domain.Affiliate) error {
	query, args, err := squirrel.
		Insert(affiliatesTable).
		Columns("id", "user_id", "name", "commission_rate", "status", "total_earnings", "referral_code", "payment_info").
		Values(
			affiliate.ID,
			affiliate.UserID,
			affiliate.Name,
			affiliate.CommissionRate,
			affiliate.Status,
			affiliate.TotalEarnings,
			affiliate.ReferralCode,
			affiliate.PaymentInfo,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&affiliate.CreatedAt, &affiliate.UpdatedAt)
	if err != nil {
		if typed := translateUniqueViolation(err); typed != nil {
			return typed
		}
		return errors.Wrap(err, "erro ao criar afiliado")
	}

	return nil
}

func (r *affiliateRepository) GetByID(ctx context.Context, id string) (*domain.Affiliate, error) {
	return r.getAffiliate(ctx, squirrel.Eq{"id": id})
}

func (r *affiliateRepository) GetByUserID(ctx context.Context, userID int) (*domain.Affiliate, error) {
	return r.getAffiliate(ctx, squirrel.Eq{"user_id": userID})
}

func (r *affiliateRepository) GetByReferralCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	return r.getAffiliate(ctx, squirrel.Eq{"referral_code": code})
}

func (r *affiliateRepository) getAffiliate(ctx context.Context, where squirrel.Eq) (*domain.Affiliate, error) {
	query, args, err := squirrel.
		Select(affiliateColumns...).
		From(affiliatesTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	affiliate := &domain.Affiliate{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&affiliate.ID,
		&affiliate.UserID,
		&affiliate.Name,
		&affiliate.CommissionRate,
		&affiliate.Status,
		&affiliate.TotalEarnings,
		&affiliate.ReferralCode,
		&affiliate.PaymentInfo,
		&affiliate.CreatedAt,
		&affiliate.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar afiliado")
	}

	return affiliate, nil
}

// Update não altera total_earnings nem referral_code
func (r *affiliateRepository) Update(ctx context.Context, affiliate *domain.Affiliate) error {
	query, args, err := squirrel.
		Update(affiliatesTable).
		Set("name", affiliate.Name).
		Set("commission_rate", affiliate.CommissionRate).
		Set("status", affiliate.Status).
		Set("payment_info", affiliate.PaymentInfo).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": affiliate.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&affiliate.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrRecordNotFound
	}
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar afiliado")
	}

	return nil
}

// IncrementEarnings soma o valor em um único UPDATE, então créditos concorrentes não se perdem
func (r *affiliateRepository) IncrementEarnings(ctx context.Context, id string, amount float64) (float64, error) {
	query, args, err := squirrel.
		Update(affiliatesTable).
		Set("total_earnings", squirrel.Expr("total_earnings + ?", amount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING total_earnings").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, ErrRecordNotFound
	}
	if err != nil {
		return 0, errors.Wrap(err, "erro ao creditar ganhos do afiliado")
	}

	return total, nil
}
