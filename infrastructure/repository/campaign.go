package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

var campaignColumns = []string{
	"id", "affiliate_id", "name", "description", "budget", "status", "platform",
	"target_audience", "start_date", "end_date", "performance_metrics",
	"publish_status", "platform_campaign_id", "publish_error", "published_at",
	"created_at", "updated_at",
}

//go:generate mockgen -source=campaign.go -destination=mocks/campaign_mock.go -package=mocks
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	List(ctx context.Context, filter domain.CampaignFilter, pagination domain.Pagination) ([]*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	UpdatePublishState(ctx context.Context, campaign *domain.Campaign) error
	UpdateMetrics(ctx context.Context, id string, metrics map[string]any) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	metrics, err := marshalJSONB(campaign.PerformanceMetrics)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns(
			"id", "affiliate_id", "name", "description", "budget", "status", "platform",
			"target_audience", "start_date", "end_date", "performance_metrics", "publish_status",
		).
		Values(
			campaign.ID,
			campaign.AffiliateID,
			campaign.Name,
			campaign.Description,
			campaign.Budget,
			campaign.Status,
			campaign.Platform,
			campaign.TargetAudience,
			campaign.StartDate,
			campaign.EndDate,
			metrics,
			campaign.PublishStatus,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return errors.Wrap(err, "erro ao criar campanha")
	}

	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	campaign, err := r.deserializeCampaign(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar campanha")
	}

	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, filter domain.CampaignFilter, pagination domain.Pagination) ([]*domain.Campaign, error) {
	pagination = pagination.Normalize()

	queryBuilder := squirrel.
		Select(campaignColumns...).
		From(campaignsTable).
		OrderBy("created_at DESC").
		Offset(uint64(pagination.Skip)).
		Limit(uint64(pagination.Limit)).
		PlaceholderFormat(squirrel.Dollar)

	if filter.AffiliateID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"affiliate_id": filter.AffiliateID})
	}

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filter.Status})
	}

	if filter.Platform != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"platform": filter.Platform})
	}

	if filter.PublishStatus != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"publish_status": filter.PublishStatus})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar campanhas")
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := r.deserializeCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return campaigns, nil
}

// Update grava os campos editáveis pelo usuário; estado de publicação tem método próprio
func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("name", campaign.Name).
		Set("description", campaign.Description).
		Set("budget", campaign.Budget).
		Set("status", campaign.Status).
		Set("target_audience", campaign.TargetAudience).
		Set("start_date", campaign.StartDate).
		Set("end_date", campaign.EndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&campaign.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrRecordNotFound
	}
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar campanha")
	}

	return nil
}

// UpdatePublishState grava o resultado da publicação.
// Uma campanha concluída nunca volta para outro status por aqui, mesmo em corrida com uma edição.
func (r *campaignRepository) UpdatePublishState(ctx context.Context, campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update(campaignsTable).
		Set("publish_status", campaign.PublishStatus).
		Set("platform_campaign_id", campaign.PlatformCampaignID).
		Set("publish_error", campaign.PublishError).
		Set("published_at", campaign.PublishedAt).
		Set("status", squirrel.Expr("CASE WHEN status = ? THEN status ELSE ? END", domain.CampaignStatusCompleted, campaign.Status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": campaign.ID}).
		Suffix("RETURNING status, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&campaign.Status, &campaign.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrRecordNotFound
	}
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar publicação da campanha")
	}

	return nil
}

func (r *campaignRepository) UpdateMetrics(ctx context.Context, id string, metrics map[string]any) error {
	payload, err := marshalJSONB(metrics)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Update(campaignsTable).
		Set("performance_metrics", payload).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar métricas da campanha")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *campaignRepository) deserializeCampaign(row rowScanner) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var metrics []byte

	if err := row.Scan(
		&campaign.ID,
		&campaign.AffiliateID,
		&campaign.Name,
		&campaign.Description,
		&campaign.Budget,
		&campaign.Status,
		&campaign.Platform,
		&campaign.TargetAudience,
		&campaign.StartDate,
		&campaign.EndDate,
		&metrics,
		&campaign.PublishStatus,
		&campaign.PlatformCampaignID,
		&campaign.PublishError,
		&campaign.PublishedAt,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := unmarshalJSONB(metrics)
	if err != nil {
		return nil, err
	}
	campaign.PerformanceMetrics = parsed

	return campaign, nil
}
