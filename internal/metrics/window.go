package metrics

import (
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// Window delimita um mês de calendário e concentra o predicado de atividade
// usado por todos os agregadores
type Window struct {
	Month domain.Month
	First time.Time
	Last  time.Time
}

func NewWindow(m domain.Month) Window {
	return Window{
		Month: m,
		First: m.FirstDay(),
		Last:  m.LastDay(),
	}
}

// CurrentWindow resolve o mês corrente a partir do instante informado
func CurrentWindow(now time.Time) Window {
	return NewWindow(domain.MonthOf(now))
}

// ActiveInMonth: (ativo OU churn depois do primeiro dia do mês) E início até o último dia do mês
func (w Window) ActiveInMonth(c domain.Customer) bool {
	if domain.DateOnly(c.StartDate).After(w.Last) {
		return false
	}

	switch c.Status {
	case domain.CustomerStatusActive:
		return true
	case domain.CustomerStatusChurned:
		return c.ChurnDate != nil && domain.DateOnly(*c.ChurnDate).After(w.First)
	default:
		return false
	}
}

func (w Window) Contains(t time.Time) bool {
	return w.Month.Contains(t)
}

func (w Window) Prev() Window {
	return NewWindow(w.Month.Prev())
}

// activeCustomers filtra os clientes ativos no mês da janela
func (w Window) activeCustomers(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if w.ActiveInMonth(c) {
			out = append(out, c)
		}
	}
	return out
}
