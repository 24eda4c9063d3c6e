package spending

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

type ExpenseService interface {
	Refresh(ctx context.Context) error
	List() []domain.Expense
	Create(ctx context.Context, input ExpenseInput) (domain.Expense, error)
	Approve(ctx context.Context, id string) (domain.Expense, error)
	Delete(ctx context.Context, id string) error
	Taxonomy() []domain.TaxonomyEntry
}

type ExpenseInput struct {
	Date        string  `json:"date" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=approved pending"`
}

type Service struct {
	repo      repository.ExpenseRepository
	store     *store.Store
	clock     clock.Clock
	telemetry *telemetry.Metrics
}

func NewService(repo repository.ExpenseRepository, store *store.Store, clock clock.Clock, telemetry *telemetry.Metrics) ExpenseService {
	return &Service{
		repo:      repo,
		store:     store,
		clock:     clock,
		telemetry: telemetry,
	}
}

func (s *Service) Refresh(ctx context.Context) error {
	expenses, err := s.repo.List(ctx)
	s.telemetry.StoreReload("expenses", err)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("expenses: erro ao recarregar despesas, mantendo dados atuais")
		return NewExpenseError(ErrFetchExpenses, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.ReplaceExpenses(expenses)
	return nil
}

func (s *Service) List() []domain.Expense {
	return s.store.Expenses()
}

// Create valida a classificação contra a taxonomia. Despesas novas ficam
// pendentes até aprovação, a menos que o status venha explícito.
func (s *Service) Create(ctx context.Context, input ExpenseInput) (domain.Expense, error) {
	logger := log.ForContext(ctx)

	expense, err := s.fromInput(input)
	if err != nil {
		return domain.Expense{}, err
	}

	id, err := utils.GeneratePrefixedID("exp")
	if err != nil {
		return domain.Expense{}, NewExpenseError(ErrGenerateExpenseID, apiErrors.ErrInternalServer, err.Error())
	}
	expense.ID = id
	expense.CreatedAt = s.clock.Now()

	if err := s.repo.Create(ctx, expense); err != nil {
		logger.WithError(err).Errorf("expenses: erro ao gravar despesa %q", expense.Name)
		return domain.Expense{}, NewExpenseError(ErrSaveExpense, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.AddExpense(expense)
	logger.Infof("expenses: despesa %s criada (%s)", expense.ID, expense.Status)

	return expense, nil
}

func (s *Service) Approve(ctx context.Context, id string) (domain.Expense, error) {
	expense, err := s.store.Expense(id)
	if err != nil {
		return domain.Expense{}, NewExpenseErrorWithID(domain.ErrExpenseNotFound, apiErrors.ErrResourceNotFound, id, "")
	}
	if expense.IsApproved() {
		return domain.Expense{}, NewExpenseErrorWithID(ErrAlreadyApproved, apiErrors.ErrInvalidTransition, id, "")
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.ExpenseStatusApproved); err != nil {
		return domain.Expense{}, s.repositoryError(ctx, err, id)
	}

	expense.Status = domain.ExpenseStatusApproved
	if err := s.store.UpdateExpense(expense); err != nil {
		log.ForContext(ctx).Warnf("expenses: despesa %s aprovada mas ausente no store", id)
	}

	return expense, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.repositoryError(ctx, err, id)
	}

	if err := s.store.DeleteExpense(id); err != nil {
		log.ForContext(ctx).Warnf("expenses: despesa %s removida mas ausente no store", id)
	}

	return nil
}

func (s *Service) Taxonomy() []domain.TaxonomyEntry {
	return domain.Taxonomy()
}

func (s *Service) repositoryError(ctx context.Context, err error, id string) error {
	if errors.Is(err, domain.ErrExpenseNotFound) {
		return NewExpenseErrorWithID(domain.ErrExpenseNotFound, apiErrors.ErrResourceNotFound, id, "")
	}
	log.ForContext(ctx).WithError(err).Errorf("expenses: erro no banco para a despesa %s", id)
	return NewExpenseErrorWithID(ErrSaveExpense, apiErrors.ErrDatabaseOperation, id, err.Error())
}

func (s *Service) fromInput(input ExpenseInput) (domain.Expense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Expense{}, NewExpenseError(ErrInvalidExpense, apiErrors.ErrMissingRequiredData, "nome é obrigatório")
	}
	if input.Amount <= 0 {
		return domain.Expense{}, NewExpenseError(ErrInvalidExpense, apiErrors.ErrInvalidFormat, "valor deve ser maior que zero")
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return domain.Expense{}, NewExpenseError(ErrInvalidExpense, apiErrors.ErrInvalidFormat, err.Error())
	}

	category, ok := domain.ParseExpenseCategory(input.Category)
	if !ok {
		return domain.Expense{}, NewExpenseError(domain.ErrInvalidCategory, apiErrors.ErrInvalidFormat, input.Category)
	}

	var subcategory domain.ExpenseSubcategory
	if strings.TrimSpace(input.Subcategory) != "" {
		parsed, ok := domain.ParseExpenseSubcategory(input.Subcategory)
		if !ok {
			return domain.Expense{}, NewExpenseError(domain.ErrInvalidSubcategory, apiErrors.ErrInvalidFormat, input.Subcategory)
		}
		subcategory = parsed
	}

	if err := domain.ValidateClassification(category, subcategory); err != nil {
		return domain.Expense{}, NewExpenseError(err, apiErrors.ErrInvalidFormat, "")
	}

	status := domain.ExpenseStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = domain.ExpenseStatusPending
	}
	if !status.Valid() {
		return domain.Expense{}, NewExpenseError(ErrInvalidExpense, apiErrors.ErrInvalidFormat, "status inválido: "+input.Status)
	}

	return domain.Expense{
		Date:        date,
		Name:        name,
		Category:    category,
		Subcategory: subcategory,
		Amount:      input.Amount,
		Status:      status,
	}, nil
}
