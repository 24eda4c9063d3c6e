package marketing

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

type MarketingService interface {
	RefreshCampaigns(ctx context.Context) error
	RefreshLeads(ctx context.Context) error

	ListCampaigns() []domain.Campaign
	CreateCampaign(ctx context.Context, input CampaignInput) (domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	ListLeads() []domain.Lead
	CreateLead(ctx context.Context, input LeadInput) (domain.Lead, error)
	ConvertLead(ctx context.Context, id string) (domain.Lead, error)
	DeleteLead(ctx context.Context, id string) error
}

type CampaignInput struct {
	Name        string  `json:"name" validate:"required"`
	Channel     string  `json:"channel" validate:"required"`
	Budget      float64 `json:"budget" validate:"gte=0"`
	Spent       float64 `json:"spent" validate:"gte=0"`
	Leads       int     `json:"leads" validate:"gte=0"`
	Conversions int     `json:"conversions" validate:"gte=0"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,oneof=active paused completed"`
}

type LeadInput struct {
	Company string `json:"company" validate:"required"`
	Contact string `json:"contact"`
	Email   string `json:"email" validate:"omitempty,email"`
	Source  string `json:"source"`
	Score   int    `json:"score" validate:"gte=0,lte=100"`
	Status  string `json:"status" validate:"omitempty,oneof=hot warm cold"`
}

type Service struct {
	campaignRepo repository.CampaignRepository
	leadRepo     repository.LeadRepository
	store        *store.Store
	clock        clock.Clock
	telemetry    *telemetry.Metrics
}

func NewService(
	campaignRepo repository.CampaignRepository,
	leadRepo repository.LeadRepository,
	store *store.Store,
	clock clock.Clock,
	telemetry *telemetry.Metrics,
) MarketingService {
	return &Service{
		campaignRepo: campaignRepo,
		leadRepo:     leadRepo,
		store:        store,
		clock:        clock,
		telemetry:    telemetry,
	}
}

func (s *Service) RefreshCampaigns(ctx context.Context) error {
	campaigns, err := s.campaignRepo.List(ctx)
	s.telemetry.StoreReload("campaigns", err)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("marketing: erro ao recarregar campanhas, mantendo dados atuais")
		return NewMarketingError(ErrFetchCampaigns, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.ReplaceCampaigns(campaigns)
	return nil
}

func (s *Service) RefreshLeads(ctx context.Context) error {
	leads, err := s.leadRepo.List(ctx)
	s.telemetry.StoreReload("leads", err)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("marketing: erro ao recarregar leads, mantendo dados atuais")
		return NewMarketingError(ErrFetchLeads, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.ReplaceLeads(leads)
	return nil
}

func (s *Service) ListCampaigns() []domain.Campaign {
	return s.store.Campaigns()
}

func (s *Service) CreateCampaign(ctx context.Context, input CampaignInput) (domain.Campaign, error) {
	logger := log.ForContext(ctx)

	campaign, err := campaignFromInput(input)
	if err != nil {
		return domain.Campaign{}, err
	}

	id, err := utils.GeneratePrefixedID("cmp")
	if err != nil {
		return domain.Campaign{}, NewMarketingError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}
	campaign.ID = id
	campaign.CreatedAt = s.clock.Now()

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		logger.WithError(err).Errorf("marketing: erro ao gravar campanha %q", campaign.Name)
		return domain.Campaign{}, NewMarketingError(ErrSaveCampaign, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.AddCampaign(campaign)
	logger.Infof("marketing: campanha %s criada", campaign.ID)

	return campaign, nil
}

func (s *Service) DeleteCampaign(ctx context.Context, id string) error {
	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) {
			return NewMarketingErrorWithID(domain.ErrCampaignNotFound, apiErrors.ErrResourceNotFound, id, "")
		}
		log.ForContext(ctx).WithError(err).Errorf("marketing: erro ao remover campanha %s", id)
		return NewMarketingErrorWithID(ErrSaveCampaign, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if err := s.store.DeleteCampaign(id); err != nil {
		log.ForContext(ctx).Warnf("marketing: campanha %s removida mas ausente no store", id)
	}

	return nil
}

func (s *Service) ListLeads() []domain.Lead {
	return s.store.Leads()
}

func (s *Service) CreateLead(ctx context.Context, input LeadInput) (domain.Lead, error) {
	logger := log.ForContext(ctx)

	lead, err := leadFromInput(input)
	if err != nil {
		return domain.Lead{}, err
	}

	id, err := utils.GeneratePrefixedID("lead")
	if err != nil {
		return domain.Lead{}, NewMarketingError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}
	lead.ID = id
	lead.CreatedDate = domain.DateOnly(s.clock.Now())

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		logger.WithError(err).Errorf("marketing: erro ao gravar lead %q", lead.Company)
		return domain.Lead{}, NewMarketingError(ErrSaveLead, apiErrors.ErrDatabaseOperation, err.Error())
	}

	s.store.AddLead(lead)
	return lead, nil
}

// ConvertLead aplica a transição para converted. Converter duas vezes é erro.
func (s *Service) ConvertLead(ctx context.Context, id string) (domain.Lead, error) {
	lead, err := s.store.Lead(id)
	if err != nil {
		return domain.Lead{}, NewMarketingErrorWithID(domain.ErrLeadNotFound, apiErrors.ErrResourceNotFound, id, "")
	}

	if err := lead.Convert(); err != nil {
		return domain.Lead{}, NewMarketingErrorWithID(err, apiErrors.ErrInvalidTransition, id, "")
	}

	if err := s.leadRepo.UpdateStatus(ctx, id, lead.Status); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return domain.Lead{}, NewMarketingErrorWithID(domain.ErrLeadNotFound, apiErrors.ErrResourceNotFound, id, "")
		}
		log.ForContext(ctx).WithError(err).Errorf("marketing: erro ao converter lead %s", id)
		return domain.Lead{}, NewMarketingErrorWithID(ErrSaveLead, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if err := s.store.UpdateLead(lead); err != nil {
		log.ForContext(ctx).Warnf("marketing: lead %s convertido mas ausente no store", id)
	}

	log.ForContext(ctx).Infof("marketing: lead %s convertido", id)
	return lead, nil
}

func (s *Service) DeleteLead(ctx context.Context, id string) error {
	if err := s.leadRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrLeadNotFound) {
			return NewMarketingErrorWithID(domain.ErrLeadNotFound, apiErrors.ErrResourceNotFound, id, "")
		}
		log.ForContext(ctx).WithError(err).Errorf("marketing: erro ao remover lead %s", id)
		return NewMarketingErrorWithID(ErrSaveLead, apiErrors.ErrDatabaseOperation, id, err.Error())
	}

	if err := s.store.DeleteLead(id); err != nil {
		log.ForContext(ctx).Warnf("marketing: lead %s removido mas ausente no store", id)
	}

	return nil
}

func campaignFromInput(input CampaignInput) (domain.Campaign, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Campaign{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "nome da campanha é obrigatório")
	}

	start, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return domain.Campaign{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrInvalidFormat, err.Error())
	}
	end, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return domain.Campaign{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrInvalidFormat, err.Error())
	}

	status := domain.CampaignStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	switch status {
	case "":
		status = domain.CampaignStatusActive
	case domain.CampaignStatusActive, domain.CampaignStatusPaused, domain.CampaignStatusCompleted:
	default:
		return domain.Campaign{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrInvalidFormat, "status inválido: "+input.Status)
	}

	campaign := domain.Campaign{
		Name:        name,
		Channel:     strings.TrimSpace(input.Channel),
		Budget:      nonNegative(input.Budget),
		Spent:       nonNegative(input.Spent),
		Leads:       max(input.Leads, 0),
		Conversions: max(input.Conversions, 0),
		StartDate:   start,
		EndDate:     end,
		Status:      status,
	}

	if err := campaign.Validate(); err != nil {
		return domain.Campaign{}, NewMarketingError(err, apiErrors.ErrInvalidFormat, "")
	}

	return campaign, nil
}

func leadFromInput(input LeadInput) (domain.Lead, error) {
	company := strings.TrimSpace(input.Company)
	if company == "" {
		return domain.Lead{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "empresa é obrigatória")
	}

	status := domain.LeadStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if status == "" {
		status = domain.LeadStatusCold
	}
	// leads só chegam a converted pela transição
	if !status.Valid() || status == domain.LeadStatusConverted {
		return domain.Lead{}, NewMarketingError(ErrInvalidInput, apiErrors.ErrInvalidFormat, "status inválido: "+input.Status)
	}

	return domain.Lead{
		Company: company,
		Contact: strings.TrimSpace(input.Contact),
		Email:   strings.TrimSpace(input.Email),
		Source:  strings.TrimSpace(input.Source),
		Score:   min(max(input.Score, 0), 100),
		Status:  status,
	}, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
