package handler

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/usecases/importing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

type BulkDeleteRequest struct {
	IDs []int `json:"ids" validate:"required,min=1,dive,gt=0"`
}

func ListCustomers(service subscribing.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.List())
	}
}

func CreateCustomer(service subscribing.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input subscribing.CustomerInput
		if !decodeBody(w, r, &input) {
			return
		}

		customer, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar cliente")
			return
		}

		writeJSON(w, http.StatusCreated, customer)
	}
}

func DeleteCustomer(service subscribing.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := intPathParam(w, r, "id")
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir cliente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// BulkDeleteCustomers responde 200 mesmo com falhas parciais; o corpo traz
// a contagem e os IDs que falharam
func BulkDeleteCustomers(service subscribing.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if !decodeBody(w, r, &req) {
			return
		}

		writeJSON(w, http.StatusOK, service.BulkDelete(r.Context(), req.IDs))
	}
}

// ImportCustomers aceita o CSV como multipart (campo "file") ou no corpo
func ImportCustomers(service importing.ImportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var source io.Reader = r.Body
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if strings.HasPrefix(mediaType, "multipart/") {
			file, _, err := r.FormFile("file")
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Arquivo CSV não enviado no campo file", nil)
				return
			}
			defer file.Close()
			source = file
		}

		result, err := service.Import(r.Context(), source)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("import: CSV ilegível")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func ExportCustomers(service importing.ImportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="customers.csv"`)

		if err := service.Export(r.Context(), w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao gerar CSV")
		}
	}
}
