package subscribing

import (
	"context"
	"strings"

	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

type CustomerService interface {
	Refresh(ctx context.Context) error
	List() []domain.Customer
	Get(id int) (domain.Customer, error)
	Create(ctx context.Context, input CustomerInput) (domain.Customer, error)
	Delete(ctx context.Context, id int) error
	BulkDelete(ctx context.Context, ids []int) BulkResult
}

// CustomerInput é o payload de criação, também usado pela importação CSV
type CustomerInput struct {
	Name         string  `json:"name" validate:"required"`
	Plan         string  `json:"plan" validate:"required,oneof=starter professional enterprise"`
	MRR          float64 `json:"mrr" validate:"gte=0"`
	InitialFee   float64 `json:"initialFee" validate:"gte=0"`
	OperationFee float64 `json:"operationFee" validate:"gte=0"`
	Assignee     string  `json:"assignee"`
	Hours        float64 `json:"hours" validate:"gte=0"`
	Region       string  `json:"region"`
	Industry     string  `json:"industry"`
	Channel      string  `json:"channel"`
	Status       string  `json:"status" validate:"omitempty,oneof=trial active churned"`
	StartDate    string  `json:"startDate"`
}

// BulkResult resume uma remoção em lote. Falhas parciais não são erro.
type BulkResult struct {
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	FailedIDs []int `json:"failedIds"`
}

type Service struct {
	integrator persistence.PersistenceIntegrator
	store      *store.Store
	clock      clock.Clock
	telemetry  *telemetry.Metrics
}

func NewService(
	integrator persistence.PersistenceIntegrator,
	store *store.Store,
	clock clock.Clock,
	telemetry *telemetry.Metrics,
) CustomerService {
	return &Service{
		integrator: integrator,
		store:      store,
		clock:      clock,
		telemetry:  telemetry,
	}
}

// Refresh substitui os clientes do store pelos do serviço de persistência.
// Em caso de falha a coleção atual é mantida.
func (s *Service) Refresh(ctx context.Context) error {
	logger := log.ForContext(ctx)

	customers, err := s.integrator.FetchCustomers(ctx)
	s.telemetry.StoreReload("customers", err)
	if err != nil {
		s.telemetry.PersistenceFailure("list")
		logger.WithError(err).Error("customers: erro ao recarregar clientes, mantendo dados atuais")
		return NewCustomerError(ErrFetchCustomers, apiErrors.ErrExternalService, err.Error())
	}

	s.store.ReplaceCustomers(customers)
	logger.Infof("customers: %d clientes carregados", len(customers))

	return nil
}

func (s *Service) List() []domain.Customer {
	return s.store.Customers()
}

func (s *Service) Get(id int) (domain.Customer, error) {
	customer, err := s.store.Customer(id)
	if err != nil {
		return domain.Customer{}, NewCustomerErrorWithID(domain.ErrCustomerNotFound, apiErrors.ErrResourceNotFound, id, "")
	}
	return customer, nil
}

// Create grava o cliente no serviço de persistência e só então o adiciona ao store
func (s *Service) Create(ctx context.Context, input CustomerInput) (domain.Customer, error) {
	logger := log.ForContext(ctx)

	customer, err := s.fromInput(input)
	if err != nil {
		return domain.Customer{}, err
	}

	id, err := s.integrator.CreateCustomer(ctx, customer)
	if err != nil {
		s.telemetry.PersistenceFailure("save")
		logger.WithError(err).Errorf("customers: erro ao salvar cliente %q", customer.Name)
		return domain.Customer{}, NewCustomerError(ErrCreateCustomer, apiErrors.ErrExternalService, err.Error())
	}

	customer.ID = id
	s.store.AddCustomer(customer)
	logger.Infof("customers: cliente %d criado", id)

	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.integrator.DeleteCustomer(ctx, id); err != nil {
		s.telemetry.PersistenceFailure("delete")
		log.ForContext(ctx).WithError(err).Errorf("customers: erro ao remover cliente %d", id)
		return NewCustomerErrorWithID(ErrDeleteCustomer, apiErrors.ErrExternalService, id, err.Error())
	}

	if err := s.store.DeleteCustomer(id); err != nil {
		log.ForContext(ctx).Warnf("customers: cliente %d removido na persistência mas ausente no store", id)
	}

	return nil
}

// BulkDelete faz uma chamada por ID. Cada cliente sai do store apenas depois
// que a sua remoção foi confirmada.
func (s *Service) BulkDelete(ctx context.Context, ids []int) BulkResult {
	result := BulkResult{FailedIDs: []int{}}

	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.Succeeded++
	}

	log.ForContext(ctx).Infof("customers: remoção em lote concluída, %d ok e %d com falha", result.Succeeded, result.Failed)

	return result
}

// fromInput aplica os padrões de um cliente novo: status trial, início hoje
// e os valores padrão de saúde, NPS e uso
func (s *Service) fromInput(input CustomerInput) (domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Customer{}, NewCustomerError(ErrInvalidCustomer, apiErrors.ErrMissingRequiredData, "nome é obrigatório")
	}

	plan, ok := domain.ParsePlan(input.Plan)
	if !ok {
		return domain.Customer{}, NewCustomerError(ErrInvalidCustomer, apiErrors.ErrInvalidFormat, "plano inválido: "+input.Plan)
	}

	status := domain.CustomerStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = domain.CustomerStatusTrial
	}
	if !status.Valid() {
		return domain.Customer{}, NewCustomerError(ErrInvalidCustomer, apiErrors.ErrInvalidFormat, "status inválido: "+input.Status)
	}

	startDate := domain.DateOnly(s.clock.Now())
	if strings.TrimSpace(input.StartDate) != "" {
		parsed, err := utils.ParseDate(input.StartDate)
		if err != nil {
			return domain.Customer{}, NewCustomerError(ErrInvalidCustomer, apiErrors.ErrInvalidFormat, err.Error())
		}
		startDate = parsed
	}

	customer := domain.Customer{
		Name:         name,
		Plan:         plan,
		MRR:          nonNegative(input.MRR),
		InitialFee:   nonNegative(input.InitialFee),
		OperationFee: nonNegative(input.OperationFee),
		Assignee:     input.Assignee,
		Hours:        nonNegative(input.Hours),
		Region:       input.Region,
		Industry:     input.Industry,
		Channel:      input.Channel,
		Status:       status,
		StartDate:    startDate,
		HealthScore:  domain.DefaultHealthScore,
		NPSScore:     domain.DefaultNPSScore,
		UsageRate:    domain.DefaultUsageRate,
	}

	// cliente importado já como churned precisa de data de saída
	if status == domain.CustomerStatusChurned {
		churn := domain.DateOnly(s.clock.Now())
		if churn.Before(startDate) {
			churn = startDate
		}
		customer.ChurnDate = &churn
	}

	return customer, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
