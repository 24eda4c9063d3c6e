package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

func ListCampaigns(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.ListCampaigns())
	}
}

func CreateCampaign(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input marketing.CampaignInput
		if !decodeBody(w, r, &input) {
			return
		}

		campaign, err := service.CreateCampaign(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar campanha")
			return
		}

		writeJSON(w, http.StatusCreated, campaign)
	}
}

func DeleteCampaign(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não informado", nil)
			return
		}

		if err := service.DeleteCampaign(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir campanha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListLeads(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.ListLeads())
	}
}

func CreateLead(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input marketing.LeadInput
		if !decodeBody(w, r, &input) {
			return
		}

		lead, err := service.CreateLead(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar lead")
			return
		}

		writeJSON(w, http.StatusCreated, lead)
	}
}

// ConvertLead marca o lead como convertido; lead já convertido devolve RES_002
func ConvertLead(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do lead não informado", nil)
			return
		}

		lead, err := service.ConvertLead(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao converter lead")
			return
		}

		writeJSON(w, http.StatusOK, lead)
	}
}

func DeleteLead(service marketing.MarketingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do lead não informado", nil)
			return
		}

		if err := service.DeleteLead(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir lead")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
