package persistenceclient

import (
	"context"
	"net/http"

	persistencedomain "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/domain"
	"github.com/vfg2006/saas-metrics-api/internal/config"
)

type Client interface {
	ListCustomers(ctx context.Context) ([]persistencedomain.CustomerRecord, error)
	SaveCustomer(ctx context.Context, record persistencedomain.CustomerRecord) (persistencedomain.SaveResponse, error)
	DeleteCustomer(ctx context.Context, id int) error
}

type PersistenceClient struct {
	httpClient *http.Client
	config     config.Persistence
}

// NewClient cria o cliente HTTP do serviço de persistência
func NewClient(cfg config.Persistence) Client {
	return &PersistenceClient{
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		config: cfg,
	}
}
