package domain

import (
	"errors"
	"fmt"
	"time"
)

type ExpenseStatus string

const (
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusPending  ExpenseStatus = "pending"
)

func (s ExpenseStatus) Valid() bool {
	return s == ExpenseStatusApproved || s == ExpenseStatusPending
}

var (
	ErrInvalidCategory    = errors.New("categoria de despesa inválida")
	ErrInvalidSubcategory = errors.New("subcategoria não pertence à categoria")
	ErrExpenseNotFound    = errors.New("despesa não encontrada")
)

type Expense struct {
	ID          string             `json:"id"`
	Date        time.Time          `json:"date"`
	Name        string             `json:"name"`
	Category    ExpenseCategory    `json:"category"`
	Subcategory ExpenseSubcategory `json:"subcategory,omitempty"`
	Amount      float64            `json:"amount"`
	Status      ExpenseStatus      `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func (e Expense) IsApproved() bool {
	return e.Status == ExpenseStatusApproved
}

// ValidateClassification garante que a categoria existe e que a subcategoria,
// quando informada, faz parte da lista daquela categoria
func ValidateClassification(category ExpenseCategory, sub ExpenseSubcategory) error {
	subs, ok := taxonomy[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	if sub == "" {
		return nil
	}
	for _, s := range subs {
		if s == sub {
			return nil
		}
	}
	return fmt.Errorf("%w: %q em %q", ErrInvalidSubcategory, sub, category)
}
