package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence"
	persistencedomain "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/domain"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func TestToDomain(t *testing.T) {
	tests := []struct {
		name          string
		record        persistencedomain.CustomerRecord
		defaultStatus domain.CustomerStatus
		validate      func(t *testing.T, c domain.Customer, err error)
	}{
		{
			name: "Campos ausentes recebem os valores padrão",
			record: persistencedomain.CustomerRecord{
				ID:           1,
				Name:         "Acme",
				Plan:         "Starter",
				MRR:          float64Ptr(25000),
				ContractDate: "2025-01-10",
			},
			defaultStatus: domain.CustomerStatusActive,
			validate: func(t *testing.T, c domain.Customer, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.PlanStarter, c.Plan)
				assert.Equal(t, domain.CustomerStatusActive, c.Status)
				assert.Equal(t, 70, c.HealthScore)
				assert.Equal(t, 7, c.NPSScore)
				assert.Equal(t, 50.0, c.UsageRate)
				assert.Zero(t, c.SupportTickets)
				assert.Zero(t, c.InitialFee)
				assert.Zero(t, c.OperationFee)
				assert.Zero(t, c.Hours)
				assert.Equal(t, time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC), c.StartDate)
				assert.Nil(t, c.ChurnDate)
			},
		},
		{
			name: "start_date é usado quando contract_date não vem",
			record: persistencedomain.CustomerRecord{
				ID:        2,
				Name:      "Beta",
				StartDate: "2024/06/01",
				Status:    "trial",
			},
			defaultStatus: domain.CustomerStatusActive,
			validate: func(t *testing.T, c domain.Customer, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.CustomerStatusTrial, c.Status)
				assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), c.StartDate)
			},
		},
		{
			name: "Valores informados prevalecem sobre os padrões",
			record: persistencedomain.CustomerRecord{
				ID:             3,
				Name:           "Gamma",
				ContractDate:   "2024-03-01",
				Status:         "churned",
				ChurnDate:      "2025-02-20",
				HealthScore:    intPtr(40),
				NPSScore:       intPtr(3),
				UsageRate:      float64Ptr(12.5),
				SupportTickets: intPtr(9),
			},
			defaultStatus: domain.CustomerStatusActive,
			validate: func(t *testing.T, c domain.Customer, err error) {
				require.NoError(t, err)
				assert.Equal(t, 40, c.HealthScore)
				assert.Equal(t, 3, c.NPSScore)
				assert.Equal(t, 12.5, c.UsageRate)
				assert.Equal(t, 9, c.SupportTickets)
				require.NotNil(t, c.ChurnDate)
				assert.Equal(t, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC), *c.ChurnDate)
			},
		},
		{
			name: "Data de início ilegível é rejeitada",
			record: persistencedomain.CustomerRecord{
				ID:           4,
				Name:         "Delta",
				ContractDate: "ontem",
			},
			defaultStatus: domain.CustomerStatusActive,
			validate: func(t *testing.T, c domain.Customer, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "Churn anterior ao início é rejeitado",
			record: persistencedomain.CustomerRecord{
				ID:           5,
				Name:         "Épsilon",
				ContractDate: "2025-03-01",
				Status:       "churned",
				ChurnDate:    "2025-01-01",
			},
			defaultStatus: domain.CustomerStatusActive,
			validate: func(t *testing.T, c domain.Customer, err error) {
				assert.ErrorIs(t, err, domain.ErrChurnBeforeStart)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := persistence.ToDomain(tt.record, tt.defaultStatus)
			tt.validate(t, c, err)
		})
	}
}

func TestPersistenceService_FetchCustomers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := persistence.New(mockClient)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, customers []domain.Customer, err error)
	}{
		{
			name: "Registros inválidos são descartados e os demais convertidos",
			setup: func() {
				// Mock: um registro válido e um com data ilegível
				mockClient.EXPECT().
					ListCustomers(gomock.Any()).
					Return([]persistencedomain.CustomerRecord{
						{ID: 1, Name: "Acme", ContractDate: "2025-01-10", MRR: float64Ptr(25000)},
						{ID: 2, Name: "Quebrado", ContractDate: "??"},
					}, nil)
			},
			validate: func(t *testing.T, customers []domain.Customer, err error) {
				require.NoError(t, err)
				require.Len(t, customers, 1)
				assert.Equal(t, 1, customers[0].ID)
				assert.Equal(t, domain.CustomerStatusActive, customers[0].Status)
			},
		},
		{
			name: "Falha do cliente HTTP é propagada",
			setup: func() {
				mockClient.EXPECT().
					ListCustomers(gomock.Any()).
					Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, customers []domain.Customer, err error) {
				assert.Error(t, err)
				assert.Nil(t, customers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			customers, err := service.FetchCustomers(context.Background())
			tt.validate(t, customers, err)
		})
	}
}

func TestPersistenceService_CreateCustomer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := persistence.New(mockClient)

	customer := domain.Customer{
		Name:      "Zeta",
		Plan:      domain.PlanProfessional,
		MRR:       80000,
		Status:    domain.CustomerStatusTrial,
		StartDate: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
	}

	// Mock: o payload leva contract_date no formato ISO
	mockClient.EXPECT().
		SaveCustomer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec persistencedomain.CustomerRecord) (persistencedomain.SaveResponse, error) {
			assert.Equal(t, "2025-05-02", rec.ContractDate)
			assert.Equal(t, "trial", rec.Status)
			require.NotNil(t, rec.MRR)
			assert.Equal(t, 80000.0, *rec.MRR)
			return persistencedomain.SaveResponse{ID: 99}, nil
		})

	id, err := service.CreateCustomer(context.Background(), customer)
	require.NoError(t, err)
	assert.Equal(t, 99, id)
}
