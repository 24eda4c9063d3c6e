package marketing

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

var referenceNow = time.Date(2025, time.June, 3, 14, 30, 0, 0, time.UTC)

func newTestService(ctrl *gomock.Controller) (*mocks.MockCampaignRepository, *mocks.MockLeadRepository, *store.Store, MarketingService) {
	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	leadRepo := mocks.NewMockLeadRepository(ctrl)
	s := store.New()
	return campaignRepo, leadRepo, s, NewService(campaignRepo, leadRepo, s, clock.Fixed(referenceNow), nil)
}

func TestService_CreateCampaign(t *testing.T) {
	tests := []struct {
		name     string
		input    CampaignInput
		setup    func(repo *mocks.MockCampaignRepository)
		validate func(t *testing.T, campaign domain.Campaign, err error, s *store.Store)
	}{
		{
			name: "Campanha válida recebe ID e status padrão",
			input: CampaignInput{
				Name:      "Webinar SaaS",
				Channel:   "webinar",
				Budget:    300000,
				Spent:     320000,
				Leads:     40,
				StartDate: "2025-05-01",
				EndDate:   "2025-05-31",
			},
			setup: func(repo *mocks.MockCampaignRepository) {
				// Mock: gravação bem sucedida
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c domain.Campaign) error {
						assert.True(t, strings.HasPrefix(c.ID, "cmp_"))
						return nil
					})
			},
			validate: func(t *testing.T, campaign domain.Campaign, err error, s *store.Store) {
				require.NoError(t, err)
				assert.Equal(t, domain.CampaignStatusActive, campaign.Status)
				assert.Equal(t, 320000.0, campaign.Spent)
				assert.Equal(t, referenceNow, campaign.CreatedAt)
				assert.Len(t, s.Campaigns(), 1)
			},
		},
		{
			name: "Data final anterior à inicial é rejeitada",
			input: CampaignInput{
				Name:      "Invertida",
				Channel:   "ads",
				StartDate: "2025-05-31",
				EndDate:   "2025-05-01",
			},
			setup: func(repo *mocks.MockCampaignRepository) {},
			validate: func(t *testing.T, campaign domain.Campaign, err error, s *store.Store) {
				assert.ErrorIs(t, err, domain.ErrCampaignInvalidRange)
				assert.Empty(t, s.Campaigns())
			},
		},
		{
			name: "Status desconhecido é rejeitado",
			input: CampaignInput{
				Name:      "Teste",
				StartDate: "2025-05-01",
				EndDate:   "2025-05-02",
				Status:    "archived",
			},
			setup: func(repo *mocks.MockCampaignRepository) {},
			validate: func(t *testing.T, campaign domain.Campaign, err error, s *store.Store) {
				var mErr *MarketingError
				require.ErrorAs(t, err, &mErr)
				assert.Equal(t, apiErrors.ErrInvalidFormat, mErr.Code)
			},
		},
		{
			name: "Falha no banco não altera o store",
			input: CampaignInput{
				Name:      "Feira",
				StartDate: "2025-05-01",
				EndDate:   "2025-05-01",
			},
			setup: func(repo *mocks.MockCampaignRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("timeout"))
			},
			validate: func(t *testing.T, campaign domain.Campaign, err error, s *store.Store) {
				assert.ErrorIs(t, err, ErrSaveCampaign)
				assert.Empty(t, s.Campaigns())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			campaignRepo, _, s, service := newTestService(ctrl)

			tt.setup(campaignRepo)
			campaign, err := service.CreateCampaign(context.Background(), tt.input)
			tt.validate(t, campaign, err, s)
		})
	}
}

func TestService_DeleteCampaign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	campaignRepo, _, s, service := newTestService(ctrl)
	s.ReplaceCampaigns([]domain.Campaign{{ID: "cmp_1"}, {ID: "cmp_2"}})

	// Mock: remoção do primeiro ok e do segundo inexistente no banco
	campaignRepo.EXPECT().Delete(gomock.Any(), "cmp_1").Return(nil)
	campaignRepo.EXPECT().Delete(gomock.Any(), "cmp_9").Return(domain.ErrCampaignNotFound)

	require.NoError(t, service.DeleteCampaign(context.Background(), "cmp_1"))
	assert.Len(t, s.Campaigns(), 1)

	err := service.DeleteCampaign(context.Background(), "cmp_9")
	var mErr *MarketingError
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, apiErrors.ErrResourceNotFound, mErr.Code)
	assert.Equal(t, "cmp_9", mErr.EntityID)
}

func TestService_CreateLead(t *testing.T) {
	tests := []struct {
		name     string
		input    LeadInput
		setup    func(repo *mocks.MockLeadRepository)
		validate func(t *testing.T, lead domain.Lead, err error)
	}{
		{
			name:  "Lead sem status nasce frio e com data de hoje",
			input: LeadInput{Company: "ACME", Contact: "Sato", Score: 130},
			setup: func(repo *mocks.MockLeadRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, lead domain.Lead, err error) {
				require.NoError(t, err)
				assert.True(t, strings.HasPrefix(lead.ID, "lead_"))
				assert.Equal(t, domain.LeadStatusCold, lead.Status)
				assert.Equal(t, 100, lead.Score)
				assert.Equal(t, time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC), lead.CreatedDate)
			},
		},
		{
			name:  "Lead não pode nascer convertido",
			input: LeadInput{Company: "ACME", Status: "converted"},
			setup: func(repo *mocks.MockLeadRepository) {},
			validate: func(t *testing.T, lead domain.Lead, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
			},
		},
		{
			name:  "Empresa é obrigatória",
			input: LeadInput{Company: "  ", Status: "hot"},
			setup: func(repo *mocks.MockLeadRepository) {},
			validate: func(t *testing.T, lead domain.Lead, err error) {
				var mErr *MarketingError
				require.ErrorAs(t, err, &mErr)
				assert.Equal(t, apiErrors.ErrMissingRequiredData, mErr.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, leadRepo, _, service := newTestService(ctrl)

			tt.setup(leadRepo)
			lead, err := service.CreateLead(context.Background(), tt.input)
			tt.validate(t, lead, err)
		})
	}
}

func TestService_ConvertLead(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		setup    func(repo *mocks.MockLeadRepository)
		validate func(t *testing.T, lead domain.Lead, err error, s *store.Store)
	}{
		{
			name: "Lead quente passa a convertido",
			id:   "lead_1",
			setup: func(repo *mocks.MockLeadRepository) {
				// Mock: atualização de status bem sucedida
				repo.EXPECT().UpdateStatus(gomock.Any(), "lead_1", domain.LeadStatusConverted).Return(nil)
			},
			validate: func(t *testing.T, lead domain.Lead, err error, s *store.Store) {
				require.NoError(t, err)
				assert.Equal(t, domain.LeadStatusConverted, lead.Status)

				stored, err := s.Lead("lead_1")
				require.NoError(t, err)
				assert.Equal(t, domain.LeadStatusConverted, stored.Status)
			},
		},
		{
			name:  "Lead já convertido gera transição inválida",
			id:    "lead_2",
			setup: func(repo *mocks.MockLeadRepository) {},
			validate: func(t *testing.T, lead domain.Lead, err error, s *store.Store) {
				assert.ErrorIs(t, err, domain.ErrLeadAlreadyConverted)

				var mErr *MarketingError
				require.ErrorAs(t, err, &mErr)
				assert.Equal(t, apiErrors.ErrInvalidTransition, mErr.Code)
			},
		},
		{
			name:  "Lead inexistente",
			id:    "lead_404",
			setup: func(repo *mocks.MockLeadRepository) {},
			validate: func(t *testing.T, lead domain.Lead, err error, s *store.Store) {
				assert.ErrorIs(t, err, domain.ErrLeadNotFound)
			},
		},
		{
			name: "Falha no banco mantém o status anterior no store",
			id:   "lead_1",
			setup: func(repo *mocks.MockLeadRepository) {
				repo.EXPECT().UpdateStatus(gomock.Any(), "lead_1", domain.LeadStatusConverted).Return(errors.New("deadlock"))
			},
			validate: func(t *testing.T, lead domain.Lead, err error, s *store.Store) {
				assert.ErrorIs(t, err, ErrSaveLead)

				stored, _ := s.Lead("lead_1")
				assert.Equal(t, domain.LeadStatusHot, stored.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, leadRepo, s, service := newTestService(ctrl)
			s.ReplaceLeads([]domain.Lead{
				{ID: "lead_1", Company: "Alpha", Status: domain.LeadStatusHot},
				{ID: "lead_2", Company: "Beta", Status: domain.LeadStatusConverted},
			})

			tt.setup(leadRepo)
			lead, err := service.ConvertLead(context.Background(), tt.id)
			tt.validate(t, lead, err, s)
		})
	}
}

func TestService_RefreshLeads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, leadRepo, s, service := newTestService(ctrl)
	s.ReplaceLeads([]domain.Lead{{ID: "lead_old"}})

	// Mock: primeira leitura falha e a segunda devolve dados novos
	gomock.InOrder(
		leadRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("indisponível")),
		leadRepo.EXPECT().List(gomock.Any()).Return([]domain.Lead{{ID: "lead_a"}, {ID: "lead_b"}}, nil),
	)

	err := service.RefreshLeads(context.Background())
	assert.ErrorIs(t, err, ErrFetchLeads)
	assert.Len(t, s.Leads(), 1)

	require.NoError(t, service.RefreshLeads(context.Background()))
	assert.Len(t, s.Leads(), 2)
}
