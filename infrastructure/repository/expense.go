package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

const (
	expensesTable = "expenses"
)

type ExpenseRepository interface {
	List(ctx context.Context) ([]domain.Expense, error)
	Create(ctx context.Context, expense domain.Expense) error
	UpdateStatus(ctx context.Context, id string, status domain.ExpenseStatus) error
	Delete(ctx context.Context, id string) error
}

type expenseRepository struct {
	conn *postgres.Connection
}

func NewExpenseRepository(conn *postgres.Connection) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	queryBuilder := squirrel.
		Select("id", "date", "name", "category", "subcategory", "amount", "status", "created_at").
		From(expensesTable).
		OrderBy("date ASC", "created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de despesas")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar despesas")
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var (
			expense     domain.Expense
			subcategory sql.NullString
		)
		if err := rows.Scan(
			&expense.ID,
			&expense.Date,
			&expense.Name,
			&expense.Category,
			&subcategory,
			&expense.Amount,
			&expense.Status,
			&expense.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao ler despesa")
		}
		expense.Subcategory = domain.ExpenseSubcategory(subcategory.String)
		expense.Date = domain.DateOnly(expense.Date)
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante iteração de despesas")
	}

	return expenses, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense domain.Expense) error {
	var subcategory any
	if expense.Subcategory != "" {
		subcategory = string(expense.Subcategory)
	}

	query, args, err := squirrel.
		Insert(expensesTable).
		Columns("id", "date", "name", "category", "subcategory", "amount", "status", "created_at").
		Values(expense.ID, expense.Date, expense.Name, string(expense.Category), subcategory, expense.Amount, string(expense.Status), expense.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o insert de despesa")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao inserir despesa %s", expense.ID)
	}

	return nil
}

func (r *expenseRepository) UpdateStatus(ctx context.Context, id string, status domain.ExpenseStatus) error {
	query, args, err := squirrel.
		Update(expensesTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o update de despesa")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao atualizar despesa %s", id)
	}

	return expectAffected(result, domain.ErrExpenseNotFound)
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir o delete de despesa")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrapf(err, "erro ao remover despesa %s", id)
	}

	return expectAffected(result, domain.ErrExpenseNotFound)
}

// expectAffected devolve notFound quando nenhuma linha foi alterada
func expectAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao obter linhas afetadas")
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
