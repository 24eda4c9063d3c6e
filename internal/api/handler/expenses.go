package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
)

func ListExpenses(service spending.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.List())
	}
}

func CreateExpense(service spending.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input spending.ExpenseInput
		if !decodeBody(w, r, &input) {
			return
		}

		expense, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar despesa")
			return
		}

		writeJSON(w, http.StatusCreated, expense)
	}
}

func ApproveExpense(service spending.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da despesa não informado", nil)
			return
		}

		expense, err := service.Approve(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao aprovar despesa")
			return
		}

		writeJSON(w, http.StatusOK, expense)
	}
}

func DeleteExpense(service spending.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathParam(r, "id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da despesa não informado", nil)
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir despesa")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetExpenseTaxonomy lista categorias e subcategorias aceitas
func GetExpenseTaxonomy(service spending.ExpenseService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Taxonomy())
	}
}
