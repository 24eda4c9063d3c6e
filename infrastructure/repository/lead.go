package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const (
	leadsTable = "leads"
)

type LeadRepository interface {
	List(ctx context.Context) ([]domain.Lead, error)
	Create(ctx context.Context, lead domain.Lead) error
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error
	Delete(ctx context.Context, id string) error
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func (r *leadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	query, args, err := squirrel.
		Select("id", "company", "contact", "email", "source", "score", "status", "created_date").
		From(leadsTable).
		OrderBy("created_date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de leads")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar leads")
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Company,
			&lead.Contact,
			&lead.Email,
			&lead.Source,
			&lead.Score,
			&lead.Status,
			&lead.CreatedDate,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler lead")
		}
		lead.CreatedDate = domain.DateOnly(lead.CreatedDate)
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de leads")
	}

	return leads, nil
}

func (r *leadRepository) Create(ctx context.Context, lead domain.Lead) error {
	query, args, err := squirrel.
		Insert(leadsTable).
		Columns("id", "company", "contact", "email", "source", "score", "status", "created_date").
		Values(lead.ID, lead.Company, lead.Contact, lead.Email, lead.Source, lead.Score, string(lead.Status), lead.CreatedDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o insert de lead")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao inserir lead %s", lead.ID)
	}

	return nil
}

func (r *leadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	query, args, err := squirrel.
		Update(leadsTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o update de lead")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao atualizar lead %s", id)
	}

	return expectAffected(result, domain.ErrLeadNotFound)
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(leadsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o delete de lead")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao remover lead %s", id)
	}

	return expectAffected(result, domain.ErrLeadNotFound)
}
