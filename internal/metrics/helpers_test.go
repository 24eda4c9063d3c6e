package metrics

import (
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func month(year int, m time.Month) domain.Month {
	return domain.Month{Year: year, Month: m}
}

func activeCustomer(id int, mrr float64, start time.Time) domain.Customer {
	return domain.Customer{
		ID:          id,
		Name:        "Cliente",
		Plan:        domain.PlanProfessional,
		MRR:         mrr,
		Status:      domain.CustomerStatusActive,
		StartDate:   start,
		HealthScore: domain.DefaultHealthScore,
		NPSScore:    domain.DefaultNPSScore,
		UsageRate:   domain.DefaultUsageRate,
	}
}

func churnedCustomer(id int, mrr float64, start, churn time.Time) domain.Customer {
	c := activeCustomer(id, mrr, start)
	c.Status = domain.CustomerStatusChurned
	c.ChurnDate = &churn
	return c
}

func approvedExpense(id string, amount float64, category domain.ExpenseCategory, day time.Time) domain.Expense {
	return domain.Expense{
		ID:       id,
		Date:     day,
		Name:     "Despesa " + id,
		Category: category,
		Amount:   amount,
		Status:   domain.ExpenseStatusApproved,
	}
}
