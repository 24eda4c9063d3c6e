package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o Postgres
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// HealthcheckHandler responde 503 quando o banco não responde ao ping.
// db nil só verifica o processo.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Database: "skipped", Time: time.Now()}
		status := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			resp.Database = "ok"
			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco de dados indisponível")
				resp.Status = "degraded"
				resp.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		writeJSON(w, status, resp)
	})
}
