package persistence

import (
	"context"
	"fmt"
	"strings"

	persistencedomain "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/domain"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/persistenceclient"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

type PersistenceIntegrator interface {
	FetchCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, customer domain.Customer) (int, error)
	DeleteCustomer(ctx context.Context, id int) error
}

type PersistenceService struct {
	Client persistenceclient.Client
}

func New(client persistenceclient.Client) PersistenceIntegrator {
	return &PersistenceService{
		Client: client,
	}
}

// FetchCustomers lê todos os clientes. Registros com data de início ilegível
// são descartados com aviso; campos ausentes recebem os valores padrão.
func (s *PersistenceService) FetchCustomers(ctx context.Context) ([]domain.Customer, error) {
	logger := log.ForContext(ctx)

	records, err := s.Client.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		customer, err := ToDomain(rec, domain.CustomerStatusActive)
		if err != nil {
			logger.WithError(err).Warnf("persistence: cliente %d ignorado", rec.ID)
			continue
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (s *PersistenceService) CreateCustomer(ctx context.Context, customer domain.Customer) (int, error) {
	resp, err := s.Client.SaveCustomer(ctx, FromDomain(customer))
	if err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (s *PersistenceService) DeleteCustomer(ctx context.Context, id int) error {
	return s.Client.DeleteCustomer(ctx, id)
}

// ToDomain converte o registro externo aplicando a tabela de valores padrão.
// defaultStatus é usado quando o status não vem preenchido.
func ToDomain(rec persistencedomain.CustomerRecord, defaultStatus domain.CustomerStatus) (domain.Customer, error) {
	start := rec.ContractDate
	if start == "" {
		start = rec.StartDate
	}
	startDate, err := utils.ParseDate(start)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("data de início: %w", err)
	}

	churnDate, err := utils.ParseOptionalDate(rec.ChurnDate)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("data de churn: %w", err)
	}

	lastLogin, err := utils.ParseOptionalDate(rec.LastLogin)
	if err != nil {
		lastLogin = nil
	}

	status := domain.CustomerStatus(strings.ToLower(strings.TrimSpace(rec.Status)))
	if !status.Valid() {
		status = defaultStatus
	}

	customer := domain.Customer{
		ID:             rec.ID,
		Name:           rec.Name,
		Plan:           domain.Plan(strings.ToLower(strings.TrimSpace(rec.Plan))),
		MRR:            floatOr(rec.MRR, 0),
		InitialFee:     floatOr(rec.InitialFee, 0),
		OperationFee:   floatOr(rec.OperationFee, 0),
		Assignee:       rec.Assignee,
		Hours:          floatOr(rec.Hours, 0),
		Region:         rec.Region,
		Industry:       rec.Industry,
		Channel:        rec.Channel,
		Status:         status,
		StartDate:      startDate,
		HealthScore:    intOr(rec.HealthScore, domain.DefaultHealthScore),
		LastLogin:      lastLogin,
		SupportTickets: intOr(rec.SupportTickets, 0),
		NPSScore:       intOr(rec.NPSScore, domain.DefaultNPSScore),
		UsageRate:      floatOr(rec.UsageRate, domain.DefaultUsageRate),
		ChurnDate:      churnDate,
	}

	if err := customer.Validate(); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func FromDomain(c domain.Customer) persistencedomain.CustomerRecord {
	return persistencedomain.CustomerRecord{
		ID:             c.ID,
		Name:           c.Name,
		Plan:           string(c.Plan),
		MRR:            &c.MRR,
		InitialFee:     &c.InitialFee,
		OperationFee:   &c.OperationFee,
		Assignee:       c.Assignee,
		Hours:          &c.Hours,
		Region:         c.Region,
		Industry:       c.Industry,
		Channel:        c.Channel,
		Status:         string(c.Status),
		ContractDate:   utils.FormatDate(c.StartDate),
		HealthScore:    &c.HealthScore,
		LastLogin:      utils.FormatOptionalDate(c.LastLogin),
		SupportTickets: &c.SupportTickets,
		NPSScore:       &c.NPSScore,
		UsageRate:      &c.UsageRate,
		ChurnDate:      utils.FormatOptionalDate(c.ChurnDate),
	}
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
