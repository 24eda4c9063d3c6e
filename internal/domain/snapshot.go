package domain

import "time"

// Snapshot é uma cópia somente leitura das quatro coleções usada durante
// uma passada de cálculo
type Snapshot struct {
	Customers []Customer
	Expenses  []Expense
	Campaigns []Campaign
	Leads     []Lead
}

// MRRSnapshot registra o MRR de um cliente em um período (mm-yyyy)
type MRRSnapshot struct {
	CustomerID int            `json:"customerId"`
	Period     string         `json:"period"`
	MRR        float64        `json:"mrr"`
	Status     CustomerStatus `json:"status"`
	CapturedAt time.Time      `json:"capturedAt"`
}

// MRRByCustomer indexa snapshots pelo ID do cliente
func MRRByCustomer(entries []*MRRSnapshot) map[int]float64 {
	out := make(map[int]float64, len(entries))
	for _, e := range entries {
		out[e.CustomerID] = e.MRR
	}
	return out
}
