package store

import (
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

var ErrNotFound = errors.New("registro não encontrado no store")

// Store mantém em memória as quatro coleções usadas nos cálculos.
// Leituras devolvem cópias; nenhuma referência interna escapa.
type Store struct {
	mu        sync.RWMutex
	customers []domain.Customer
	expenses  []domain.Expense
	campaigns []domain.Campaign
	leads     []domain.Lead
	updatedAt time.Time
}

func New() *Store {
	return &Store{}
}

func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.Snapshot{
		Customers: copyCustomers(s.customers),
		Expenses:  append([]domain.Expense(nil), s.expenses...),
		Campaigns: append([]domain.Campaign(nil), s.campaigns...),
		Leads:     append([]domain.Lead(nil), s.leads...),
	}
}

// UpdatedAt indica a última mutação aplicada
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

func (s *Store) ReplaceCustomers(customers []domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = copyCustomers(customers)
	s.touch()
}

func (s *Store) ReplaceExpenses(expenses []domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]domain.Expense(nil), expenses...)
	s.touch()
}

func (s *Store) ReplaceCampaigns(campaigns []domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append([]domain.Campaign(nil), campaigns...)
	s.touch()
}

func (s *Store) ReplaceLeads(leads []domain.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append([]domain.Lead(nil), leads...)
	s.touch()
}

func (s *Store) Customers() []domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCustomers(s.customers)
}

func (s *Store) Customer(id int) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return copyCustomer(c), nil
		}
	}
	return domain.Customer{}, ErrNotFound
}

func (s *Store) AddCustomer(c domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, copyCustomer(c))
	s.touch()
}

func (s *Store) DeleteCustomer(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.customers {
		if c.ID == id {
			s.customers = append(s.customers[:i:i], s.customers[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Expenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Expense(nil), s.expenses...)
}

func (s *Store) Expense(id string) (domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Expense{}, ErrNotFound
}

func (s *Store) AddExpense(e domain.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	s.touch()
}

// UpdateExpense substitui a despesa com o mesmo ID
func (s *Store) UpdateExpense(e domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i:i], s.expenses[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Campaigns() []domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Campaign(nil), s.campaigns...)
}

func (s *Store) AddCampaign(c domain.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, c)
	s.touch()
}

func (s *Store) DeleteCampaign(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.campaigns {
		if c.ID == id {
			s.campaigns = append(s.campaigns[:i:i], s.campaigns[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Leads() []domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Lead(nil), s.leads...)
}

func (s *Store) Lead(id string) (domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.leads {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Lead{}, ErrNotFound
}

func (s *Store) AddLead(l domain.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, l)
	s.touch()
}

// UpdateLead substitui o lead com o mesmo ID
func (s *Store) UpdateLead(l domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.leads {
		if s.leads[i].ID == l.ID {
			s.leads[i] = l
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteLead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.leads {
		if l.ID == id {
			s.leads = append(s.leads[:i:i], s.leads[i+1:]...)
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) touch() {
	s.updatedAt = time.Now()
}

func copyCustomers(in []domain.Customer) []domain.Customer {
	if in == nil {
		return nil
	}
	out := make([]domain.Customer, len(in))
	for i, c := range in {
		out[i] = copyCustomer(c)
	}
	return out
}

func copyCustomer(c domain.Customer) domain.Customer {
	if c.ChurnDate != nil {
		d := *c.ChurnDate
		c.ChurnDate = &d
	}
	if c.LastLogin != nil {
		d := *c.LastLogin
		c.LastLogin = &d
	}
	return c
}
