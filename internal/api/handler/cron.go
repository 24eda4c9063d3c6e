package handler

import (
	"context"
	"net/http"

	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

const (
	CronJobTypeCustomers   = "customers"
	CronJobTypeMRRSnapshot = "mrr-snapshot"
)

// ManualJob é o que os agendadores expõem para execução sob demanda
type ManualJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

type CronJobServices struct {
	CustomerSync    ManualJob
	MRRSnapshotSync ManualJob
}

func (s CronJobServices) byType(cronType string) ManualJob {
	switch cronType {
	case CronJobTypeCustomers:
		return s.CustomerSync
	case CronJobTypeMRRSnapshot:
		return s.MRRSnapshotSync
	default:
		return nil
	}
}

// RunCronJob dispara um job em segundo plano e responde 202
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := pathParam(r, "type")
		job := services.byType(cronType)
		if job == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: customers, mrr-snapshot", nil)
			return
		}

		if !job.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, "Cron job já em andamento", map[string]any{"type": cronType})
			return
		}

		log.ForContext(r.Context()).WithField("job", cronType).Info("cron: execução manual iniciada")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		for _, cronType := range []string{CronJobTypeCustomers, CronJobTypeMRRSnapshot} {
			if job := services.byType(cronType); job != nil {
				status[cronType] = job.GetStatus()
			}
		}
		writeJSON(w, http.StatusOK, status)
	}
}
