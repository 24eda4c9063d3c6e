package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

type CampaignRepository interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	Create(ctx context.Context, campaign domain.Campaign) error
	Delete(ctx context.Context, id string) error
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	query, args, err := squirrel.
		Select("id", "name", "channel", "budget", "spent", "leads", "conversions", "start_date", "end_date", "status", "created_at").
		From(campaignsTable).
		OrderBy("start_date ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de campanhas")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar campanhas")
	}
	defer rows.Close()

	campaigns := make([]domain.Campaign, 0)
	for rows.Next() {
		var campaign domain.Campaign
		if err := rows.Scan(
			&campaign.ID,
			&campaign.Name,
			&campaign.Channel,
			&campaign.Budget,
			&campaign.Spent,
			&campaign.Leads,
			&campaign.Conversions,
			&campaign.StartDate,
			&campaign.EndDate,
			&campaign.Status,
			&campaign.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler campanha")
		}
		campaign.StartDate = domain.DateOnly(campaign.StartDate)
		campaign.EndDate = domain.DateOnly(campaign.EndDate)
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de campanhas")
	}

	return campaigns, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign domain.Campaign) error {
	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "name", "channel", "budget", "spent", "leads", "conversions", "start_date", "end_date", "status", "created_at").
		Values(
			campaign.ID,
			campaign.Name,
			campaign.Channel,
			campaign.Budget,
			campaign.Spent,
			campaign.Leads,
			campaign.Conversions,
			campaign.StartDate,
			campaign.EndDate,
			string(campaign.Status),
			campaign.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o insert de campanha")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao inserir campanha %s", campaign.ID)
	}

	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(campaignsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o delete de campanha")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao remover campanha %s", id)
	}

	return expectAffected(result, domain.ErrCampaignNotFound)
}
