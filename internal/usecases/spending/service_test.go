package spending

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

var referenceNow = time.Date(2025, time.May, 20, 9, 0, 0, 0, time.UTC)

func TestService_Create(t *testing.T) {
	tests := []struct {
		name     string
		input    ExpenseInput
		setup    func(repo *mocks.MockExpenseRepository)
		validate func(t *testing.T, expense domain.Expense, err error, s *store.Store)
	}{
		{
			name: "Despesa válida nasce pendente e vai para o store",
			input: ExpenseInput{
				Date:        "2025-05-10",
				Name:        "Google Ads",
				Category:    "advertising",
				Subcategory: "web_ads",
				Amount:      120000,
			},
			setup: func(repo *mocks.MockExpenseRepository) {
				// Mock: gravação no banco bem sucedida
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e domain.Expense) error {
						assert.True(t, strings.HasPrefix(e.ID, "exp_"))
						assert.Equal(t, domain.ExpenseStatusPending, e.Status)
						return nil
					})
			},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				require.NoError(t, err)
				assert.Equal(t, domain.CategoryAdvertising, expense.Category)
				assert.Equal(t, domain.SubWebAds, expense.Subcategory)
				assert.Equal(t, time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC), expense.Date)
				assert.Equal(t, referenceNow, expense.CreatedAt)
				assert.Len(t, s.Expenses(), 1)
			},
		},
		{
			name: "Subcategoria de outra categoria é rejeitada",
			input: ExpenseInput{
				Date:        "2025-05-10",
				Name:        "Salários",
				Category:    "advertising",
				Subcategory: "full_time_salary",
				Amount:      500000,
			},
			setup: func(repo *mocks.MockExpenseRepository) {},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidSubcategory)

				var expenseErr *ExpenseError
				require.ErrorAs(t, err, &expenseErr)
				assert.Equal(t, apiErrors.ErrInvalidFormat, expenseErr.Code)
				assert.Empty(t, s.Expenses())
			},
		},
		{
			name: "Categoria informada pelo rótulo em japonês é aceita",
			input: ExpenseInput{
				Date:     "2025/05/01",
				Name:     "Agência",
				Category: domain.CategoryOutsourcing.Label(),
				Amount:   80000,
				Status:   "approved",
			},
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				require.NoError(t, err)
				assert.Equal(t, domain.CategoryOutsourcing, expense.Category)
				assert.True(t, expense.IsApproved())
			},
		},
		{
			name:  "Valor zero é rejeitado",
			input: ExpenseInput{Date: "2025-05-10", Name: "Nada", Category: "personnel", Amount: 0},
			setup: func(repo *mocks.MockExpenseRepository) {},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				assert.ErrorIs(t, err, ErrInvalidExpense)
			},
		},
		{
			name:  "Falha no banco não altera o store",
			input: ExpenseInput{Date: "2025-05-10", Name: "Servidor", Category: "reserve_investment", Amount: 10},
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				assert.ErrorIs(t, err, ErrSaveExpense)
				assert.Empty(t, s.Expenses())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockExpenseRepository(ctrl)
			s := store.New()
			service := NewService(repo, s, clock.Fixed(referenceNow), nil)

			tt.setup(repo)
			expense, err := service.Create(context.Background(), tt.input)
			tt.validate(t, expense, err, s)
		})
	}
}

func TestService_Approve(t *testing.T) {
	pending := domain.Expense{ID: "exp_1", Name: "Evento", Category: domain.CategoryAdvertising, Amount: 1000, Status: domain.ExpenseStatusPending}
	approved := domain.Expense{ID: "exp_2", Name: "Bônus", Category: domain.CategoryPersonnel, Amount: 2000, Status: domain.ExpenseStatusApproved}

	tests := []struct {
		name     string
		id       string
		setup    func(repo *mocks.MockExpenseRepository)
		validate func(t *testing.T, expense domain.Expense, err error, s *store.Store)
	}{
		{
			name: "Aprovação de despesa pendente",
			id:   "exp_1",
			setup: func(repo *mocks.MockExpenseRepository) {
				repo.EXPECT().UpdateStatus(gomock.Any(), "exp_1", domain.ExpenseStatusApproved).Return(nil)
			},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				require.NoError(t, err)
				assert.True(t, expense.IsApproved())
				stored, err := s.Expense("exp_1")
				require.NoError(t, err)
				assert.True(t, stored.IsApproved())
			},
		},
		{
			name:  "Despesa já aprovada retorna conflito",
			id:    "exp_2",
			setup: func(repo *mocks.MockExpenseRepository) {},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				var expenseErr *ExpenseError
				require.ErrorAs(t, err, &expenseErr)
				assert.Equal(t, apiErrors.ErrInvalidTransition, expenseErr.Code)
			},
		},
		{
			name:  "Despesa inexistente",
			id:    "exp_404",
			setup: func(repo *mocks.MockExpenseRepository) {},
			validate: func(t *testing.T, expense domain.Expense, err error, s *store.Store) {
				assert.ErrorIs(t, err, domain.ErrExpenseNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockExpenseRepository(ctrl)
			s := store.New()
			s.ReplaceExpenses([]domain.Expense{pending, approved})
			service := NewService(repo, s, clock.Fixed(referenceNow), nil)

			tt.setup(repo)
			expense, err := service.Approve(context.Background(), tt.id)
			tt.validate(t, expense, err, s)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpenseRepository(ctrl)
	s := store.New()
	s.ReplaceExpenses([]domain.Expense{{ID: "exp_1"}, {ID: "exp_2"}})
	service := NewService(repo, s, clock.Fixed(referenceNow), nil)

	repo.EXPECT().Delete(gomock.Any(), "exp_1").Return(nil)
	repo.EXPECT().Delete(gomock.Any(), "exp_9").Return(domain.ErrExpenseNotFound)

	require.NoError(t, service.Delete(context.Background(), "exp_1"))
	assert.Len(t, s.Expenses(), 1)

	err := service.Delete(context.Background(), "exp_9")
	var expenseErr *ExpenseError
	require.ErrorAs(t, err, &expenseErr)
	assert.Equal(t, apiErrors.ErrResourceNotFound, expenseErr.Code)
	assert.Len(t, s.Expenses(), 1)
}

func TestService_Taxonomy(t *testing.T) {
	service := NewService(nil, store.New(), clock.Fixed(referenceNow), nil)

	taxonomy := service.Taxonomy()
	require.Len(t, taxonomy, 5)
	assert.Equal(t, domain.CategoryAdvertising, taxonomy[0].Category)
	assert.Len(t, taxonomy[0].Subcategories, 6)
	assert.Len(t, taxonomy[2].Subcategories, 7)
}
