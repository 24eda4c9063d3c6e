package domain

import (
	"errors"
	"strings"
	"time"
)

type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// Plans lista os planos na ordem de apresentação
func Plans() []Plan {
	return []Plan{PlanStarter, PlanProfessional, PlanEnterprise}
}

func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

var planLabels = map[Plan]string{
	PlanStarter:      "スターター",
	PlanProfessional: "プロフェッショナル",
	PlanEnterprise:   "エンタープライズ",
}

func (p Plan) Label() string {
	if label, ok := planLabels[p]; ok {
		return label
	}
	return string(p)
}

// ParsePlan aceita o valor do enum ou o rótulo exibido
func ParsePlan(value string) (Plan, bool) {
	value = strings.TrimSpace(value)
	if p := Plan(strings.ToLower(value)); p.Valid() {
		return p, true
	}
	for p, label := range planLabels {
		if label == value {
			return p, true
		}
	}
	return "", false
}

type CustomerStatus string

const (
	CustomerStatusTrial   CustomerStatus = "trial"
	CustomerStatusActive  CustomerStatus = "active"
	CustomerStatusChurned CustomerStatus = "churned"
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusTrial, CustomerStatusActive, CustomerStatusChurned:
		return true
	}
	return false
}

// Valores assumidos quando o serviço de persistência não informa o campo
const (
	DefaultHealthScore = 70
	DefaultNPSScore    = 7
	DefaultUsageRate   = 50
)

var (
	ErrChurnBeforeStart = errors.New("data de churn anterior ao início do contrato")
	ErrCustomerNotFound = errors.New("cliente não encontrado")
)

type Customer struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Plan           Plan           `json:"plan"`
	MRR            float64        `json:"mrr"`
	InitialFee     float64        `json:"initialFee"`
	OperationFee   float64        `json:"operationFee"`
	Assignee       string         `json:"assignee"`
	Hours          float64        `json:"hours"`
	Region         string         `json:"region"`
	Industry       string         `json:"industry"`
	Channel        string         `json:"channel"`
	Status         CustomerStatus `json:"status"`
	StartDate      time.Time      `json:"startDate"`
	HealthScore    int            `json:"healthScore"`
	LastLogin      *time.Time     `json:"lastLogin,omitempty"`
	SupportTickets int            `json:"supportTickets"`
	NPSScore       int            `json:"npsScore"`
	UsageRate      float64        `json:"usageRate"`
	ChurnDate      *time.Time     `json:"churnDate,omitempty"`
}

func (c Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func (c Customer) IsChurned() bool {
	return c.Status == CustomerStatusChurned
}

// Validate verifica a consistência temporal do contrato
func (c Customer) Validate() error {
	if c.ChurnDate != nil && DateOnly(*c.ChurnDate).Before(DateOnly(c.StartDate)) {
		return ErrChurnBeforeStart
	}
	return nil
}

// RiskTier classifica o risco de churn a partir do health score
type RiskTier string

const (
	RiskHealthy  RiskTier = "healthy"
	RiskAtRisk   RiskTier = "at_risk"
	RiskCritical RiskTier = "critical"
)

func RiskTierOf(healthScore int) RiskTier {
	switch {
	case healthScore >= 80:
		return RiskHealthy
	case healthScore >= 60:
		return RiskAtRisk
	default:
		return RiskCritical
	}
}
