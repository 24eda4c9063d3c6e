package domain

// CustomerRecord é o formato trocado com o serviço de persistência.
// Campos opcionais são ponteiros para distinguir ausência de zero.
type CustomerRecord struct {
	ID             int      `json:"id,omitempty"`
	Name           string   `json:"name"`
	Plan           string   `json:"plan"`
	MRR            *float64 `json:"mrr"`
	InitialFee     *float64 `json:"initial_fee"`
	OperationFee   *float64 `json:"operation_fee"`
	Assignee       string   `json:"assignee"`
	Hours          *float64 `json:"hours"`
	Region         string   `json:"region"`
	Industry       string   `json:"industry"`
	Channel        string   `json:"channel"`
	Status         string   `json:"status,omitempty"`
	ContractDate   string   `json:"contract_date,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	HealthScore    *int     `json:"health_score,omitempty"`
	LastLogin      string   `json:"last_login,omitempty"`
	SupportTickets *int     `json:"support_tickets,omitempty"`
	NPSScore       *int     `json:"nps_score,omitempty"`
	UsageRate      *float64 `json:"usage_rate,omitempty"`
	ChurnDate      string   `json:"churn_date,omitempty"`
}

type SaveResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
