package syncing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

var ErrReload = errors.New("erro ao recarregar o store")

// ReloadError lista as coleções que não puderam ser recarregadas
type ReloadError struct {
	Collections []string
	Err         error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("%s: %s", ErrReload.Error(), strings.Join(e.Collections, ", "))
}

func (e *ReloadError) Unwrap() []error {
	return []error{ErrReload, e.Err}
}

type SyncService interface {
	Reload(ctx context.Context) error
}

type Service struct {
	sources map[string]func(ctx context.Context) error
}

func NewService(
	customers subscribing.CustomerService,
	expenses spending.ExpenseService,
	marketingService marketing.MarketingService,
) SyncService {
	return &Service{
		sources: map[string]func(ctx context.Context) error{
			"customers": customers.Refresh,
			"expenses":  expenses.Refresh,
			"campaigns": marketingService.RefreshCampaigns,
			"leads":     marketingService.RefreshLeads,
		},
	}
}

// Reload busca as quatro coleções em paralelo. Cada coleção só é trocada
// quando a sua própria leitura termina bem; uma falha não cancela as demais.
func (s *Service) Reload(ctx context.Context) error {
	logger := log.ForContext(ctx)

	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed []string
	)

	for name, refresh := range s.sources {
		g.Go(func() error {
			if err := refresh(ctx); err != nil {
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		logger.Info("sync: store recarregado")
		return nil
	}

	sort.Strings(failed)
	logger.WithError(err).Errorf("sync: falha ao recarregar %s", strings.Join(failed, ", "))

	return &ReloadError{Collections: failed, Err: err}
}
