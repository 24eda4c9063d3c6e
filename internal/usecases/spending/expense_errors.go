package spending

import (
	"errors"
	"fmt"
)

var (
	ErrFetchExpenses     = errors.New("erro ao buscar despesas no banco de dados")
	ErrSaveExpense       = errors.New("erro ao gravar despesa no banco de dados")
	ErrInvalidExpense    = errors.New("dados da despesa inválidos")
	ErrAlreadyApproved   = errors.New("despesa já aprovada")
	ErrGenerateExpenseID = errors.New("erro ao gerar ID da despesa")
)

// ExpenseError é um erro com contexto adicional para despesas
type ExpenseError struct {
	Err       error
	Code      string
	ExpenseID string
	Details   string
}

func (e *ExpenseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ExpenseError) Unwrap() error {
	return e.Err
}

func NewExpenseError(err error, code string, details string) *ExpenseError {
	return &ExpenseError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewExpenseErrorWithID(err error, code string, expenseID string, details string) *ExpenseError {
	return &ExpenseError{
		Err:       err,
		Code:      code,
		ExpenseID: expenseID,
		Details:   details,
	}
}
