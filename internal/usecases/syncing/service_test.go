package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	persistencemocks "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/mocks"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

type fixtures struct {
	integrator   *persistencemocks.MockPersistenceIntegrator
	expenseRepo  *mocks.MockExpenseRepository
	campaignRepo *mocks.MockCampaignRepository
	leadRepo     *mocks.MockLeadRepository
}

func TestService_Reload(t *testing.T) {
	now := clock.Fixed(time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		setup    func(f fixtures)
		validate func(t *testing.T, err error, s *store.Store)
	}{
		{
			name: "Todas as coleções são substituídas",
			setup: func(f fixtures) {
				// Mock: as quatro fontes respondem
				f.integrator.EXPECT().FetchCustomers(gomock.Any()).Return([]domain.Customer{{ID: 1}, {ID: 2}}, nil)
				f.expenseRepo.EXPECT().List(gomock.Any()).Return([]domain.Expense{{ID: "exp_1"}}, nil)
				f.campaignRepo.EXPECT().List(gomock.Any()).Return([]domain.Campaign{{ID: "cmp_1"}}, nil)
				f.leadRepo.EXPECT().List(gomock.Any()).Return([]domain.Lead{{ID: "lead_1"}, {ID: "lead_2"}}, nil)
			},
			validate: func(t *testing.T, err error, s *store.Store) {
				require.NoError(t, err)
				assert.Len(t, s.Customers(), 2)
				assert.Len(t, s.Expenses(), 1)
				assert.Len(t, s.Campaigns(), 1)
				assert.Len(t, s.Leads(), 2)
			},
		},
		{
			name: "Falha em uma coleção preserva só ela",
			setup: func(f fixtures) {
				// Mock: persistência fora do ar, banco ok
				f.integrator.EXPECT().FetchCustomers(gomock.Any()).Return(nil, errors.New("connection refused"))
				f.expenseRepo.EXPECT().List(gomock.Any()).Return([]domain.Expense{{ID: "exp_1"}, {ID: "exp_2"}}, nil)
				f.campaignRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))
				f.leadRepo.EXPECT().List(gomock.Any()).Return([]domain.Lead{}, nil)
			},
			validate: func(t *testing.T, err error, s *store.Store) {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrReload)

				var reloadErr *ReloadError
				require.ErrorAs(t, err, &reloadErr)
				assert.Equal(t, []string{"campaigns", "customers"}, reloadErr.Collections)

				assert.Len(t, s.Customers(), 1)
				assert.Len(t, s.Expenses(), 2)
				assert.Len(t, s.Campaigns(), 1)
				assert.Empty(t, s.Leads())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := fixtures{
				integrator:   persistencemocks.NewMockPersistenceIntegrator(ctrl),
				expenseRepo:  mocks.NewMockExpenseRepository(ctrl),
				campaignRepo: mocks.NewMockCampaignRepository(ctrl),
				leadRepo:     mocks.NewMockLeadRepository(ctrl),
			}

			s := store.New()
			s.ReplaceCustomers([]domain.Customer{{ID: 99}})
			s.ReplaceCampaigns([]domain.Campaign{{ID: "cmp_old"}})
			s.ReplaceLeads([]domain.Lead{{ID: "lead_old"}})

			service := NewService(
				subscribing.NewService(f.integrator, s, now, nil),
				spending.NewService(f.expenseRepo, s, now, nil),
				marketing.NewService(f.campaignRepo, f.leadRepo, s, now, nil),
			)

			tt.setup(f)
			err := service.Reload(context.Background())
			tt.validate(t, err, s)
		})
	}
}
