package repository

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const (
	mrrSnapshotsTable = "mrr_snapshots ms"
)

type MRRSnapshotRepository interface {
	SaveSnapshots(ctx context.Context, snapshots []*domain.MRRSnapshot) error
	GetByPeriod(ctx context.Context, period string) ([]*domain.MRRSnapshot, error)
	GetAllPeriods(ctx context.Context) ([]string, error)
}

type mrrSnapshotRepository struct {
	conn *postgres.Connection
}

func NewMRRSnapshotRepository(conn *postgres.Connection) MRRSnapshotRepository {
	return &mrrSnapshotRepository{
		conn: conn,
	}
}

// SaveSnapshots grava os snapshots de um período numa única transação.
// Um snapshot já existente para (customer_id, period) é sobrescrito.
func (r *mrrSnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []*domain.MRRSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, snapshot := range snapshots {
			query, args, err := squirrel.
				Insert("mrr_snapshots").
				Columns("customer_id", "period", "mrr", "status", "captured_at").
				Values(snapshot.CustomerID, snapshot.Period, snapshot.MRR, string(snapshot.Status), snapshot.CapturedAt).
				Suffix(`
					ON CONFLICT (customer_id, period) DO UPDATE SET
						mrr = EXCLUDED.mrr,
						status = EXCLUDED.status,
						captured_at = EXCLUDED.captured_at
				`).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir o upsert de snapshot")
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return errors.Wrapf(err, "erro ao gravar snapshot do cliente %d em %s", snapshot.CustomerID, snapshot.Period)
			}
		}
		return nil
	})
}

// GetByPeriod devolve nil, nil quando o período ainda não foi capturado
func (r *mrrSnapshotRepository) GetByPeriod(ctx context.Context, period string) ([]*domain.MRRSnapshot, error) {
	query, args, err := squirrel.
		Select("ms.customer_id", "ms.period", "ms.mrr", "ms.status", "ms.captured_at").
		From(mrrSnapshotsTable).
		Where(squirrel.Eq{"ms.period": period}).
		OrderBy("ms.customer_id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de snapshots")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao consultar snapshots de %s", period)
	}
	defer rows.Close()

	var snapshots []*domain.MRRSnapshot
	for rows.Next() {
		var snapshot domain.MRRSnapshot
		if err := rows.Scan(
			&snapshot.CustomerID,
			&snapshot.Period,
			&snapshot.MRR,
			&snapshot.Status,
			&snapshot.CapturedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler snapshot")
		}
		snapshots = append(snapshots, &snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de snapshots")
	}

	return snapshots, nil
}

// GetAllPeriods lista os períodos capturados, do mais recente para o mais antigo
func (r *mrrSnapshotRepository) GetAllPeriods(ctx context.Context) ([]string, error) {
	query, args, err := squirrel.
		Select("DISTINCT ms.period").
		From(mrrSnapshotsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de períodos")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar períodos")
	}
	defer rows.Close()

	months := make([]domain.Month, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, errors.Wrap(err, "erro ao ler período")
		}
		month, err := domain.ParsePeriod(period)
		if err != nil {
			continue
		}
		months = append(months, month)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de períodos")
	}

	// mm-yyyy não ordena lexicograficamente
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})

	periods := make([]string, 0, len(months))
	for _, m := range months {
		periods = append(periods, m.Period())
	}

	return periods, nil
}
