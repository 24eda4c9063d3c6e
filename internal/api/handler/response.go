package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 10 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("http: erro ao enviar resposta")
	}
}

// decodeBody lê o JSON do corpo e aplica as tags validate. Em caso de erro
// a resposta já foi escrita e o retorno é false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return false
		}

		code := apiErrors.ErrInvalidRequest
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				code = apiErrors.ErrMissingRequiredData
			}
			details[fe.Field()] = fe.Tag()
		}
		apiErrors.WriteError(w, code, "Campos inválidos", details)
		return false
	}

	return true
}

// writeServiceError traduz os erros tipados dos casos de uso para o código
// da API; erros sem código viram SRV_001 com a mensagem de fallback
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log.ForContext(r.Context()).WithError(err).Warn("http: " + fallback)

	var (
		customerErr  *subscribing.CustomerError
		expenseErr   *spending.ExpenseError
		marketingErr *marketing.MarketingError
		authErr      *authenticating.AuthError
	)

	switch {
	case errors.As(err, &customerErr):
		apiErrors.WriteError(w, customerErr.Code, customerErr.Error(), nil)
	case errors.As(err, &expenseErr):
		apiErrors.WriteError(w, expenseErr.Code, expenseErr.Error(), nil)
	case errors.As(err, &marketingErr):
		apiErrors.WriteError(w, marketingErr.Code, marketingErr.Error(), nil)
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func pathParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func intPathParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := pathParam(r, name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro "+name+" não informado", nil)
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+name+" inválido", nil)
		return 0, false
	}
	return id, true
}

// monthFromQuery lê ?month=MM&year=YYYY. Sem os dois parâmetros vale o mês
// corrente; um deles ausente ou fora do intervalo é VAL_004.
func monthFromQuery(w http.ResponseWriter, r *http.Request, current domain.Month) (domain.Month, bool) {
	query := r.URL.Query()
	rawMonth, rawYear := query.Get("month"), query.Get("year")
	if rawMonth == "" && rawYear == "" {
		return current, true
	}

	month, errMonth := strconv.Atoi(rawMonth)
	year, errYear := strconv.Atoi(rawYear)
	if errMonth != nil || errYear != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Informe month=MM e year=YYYY", nil)
		return domain.Month{}, false
	}

	m, err := domain.NewMonth(year, month)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
		return domain.Month{}, false
	}
	return m, true
}

// intQuery devolve fallback quando o parâmetro está ausente
func intQuery(w http.ResponseWriter, r *http.Request, name string, fallback, maxValue int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxValue {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+name+" inválido", nil)
		return 0, false
	}
	return n, true
}
