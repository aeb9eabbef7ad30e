package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/affiliate-campaign-api/infrastructure/database/postgres"
	"github.com/vfg2006/affiliate-campaign-api/internal/domain"
)

const (
	analysesTable = "campaign_analyses"
)

var analysisColumns = []string{
	"id", "campaign_id", "analysis_date", "insights", "recommendations",
	"performance_score", "improvement_areas", "parser_version", "degraded",
}

//go:generate mockgen -source=analysis.go -destination=mocks/analysis_mock.go -package=mocks
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	GetLatestByCampaignID(ctx context.Context, campaignID string) (*domain.Analysis, error)
	ListByCampaignID(ctx context.Context, campaignID string, pagination domain.Pagination) ([]*domain.Analysis, error)
}

type analysisRepository struct {
	conn *postgres.Connection
}

func NewAnalysisRepository(conn *postgres.Connection) AnalysisRepository {
	return &analysisRepository{
		conn: conn,
	}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *domain.Analysis) error {
	insights, err := marshalJSONB(analysis.Insights)
	if err != nil {
		return err
	}

	query, args, err := squirrel.
		Insert(analysesTable).
		Columns(analysisColumns...).
		Values(
			analysis.ID,
			analysis.CampaignID,
			analysis.AnalysisDate,
			insights,
			pq.Array(analysis.Recommendations),
			analysis.PerformanceScore,
			pq.Array(analysis.ImprovementAreas),
			analysis.ParserVersion,
			analysis.Degraded,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao salvar análise da campanha")
	}

	return nil
}

func (r *analysisRepository) GetLatestByCampaignID(ctx context.Context, campaignID string) (*domain.Analysis, error) {
	query, args, err := squirrel.
		Select(analysisColumns...).
		From(analysesTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("analysis_date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	analysis, err := deserializeAnalysis(r.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar última análise")
	}

	return analysis, nil
}

func (r *analysisRepository) ListByCampaignID(ctx context.Context, campaignID string, pagination domain.Pagination) ([]*domain.Analysis, error) {
	pagination = pagination.Normalize()

	query, args, err := squirrel.
		Select(analysisColumns...).
		From(analysesTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("analysis_date DESC").
		Offset(uint64(pagination.Skip)).
		Limit(uint64(pagination.Limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar análises")
	}
	defer rows.Close()

	analyses := make([]*domain.Analysis, 0)
	for rows.Next() {
		analysis, err := deserializeAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}

	return analyses, rows.Err()
}

func deserializeAnalysis(row rowScanner) (*domain.Analysis, error) {
	analysis := &domain.Analysis{}
	var insights []byte
	var recommendations, improvementAreas pq.StringArray

	if err := row.Scan(
		&analysis.ID,
		&analysis.CampaignID,
		&analysis.AnalysisDate,
		&insights,
		&recommendations,
		&analysis.PerformanceScore,
		&improvementAreas,
		&analysis.ParserVersion,
		&analysis.Degraded,
	); err != nil {
		return nil, err
	}

	parsed, err := unmarshalJSONB(insights)
	if err != nil {
		return nil, err
	}

	analysis.Insights = parsed
	analysis.Recommendations = []string(recommendations)
	analysis.ImprovementAreas = []string(improvementAreas)

	return analysis, nil
}
