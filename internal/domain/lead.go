package domain

import (
	"errors"
	"time"
)

type LeadStatus string

const (
	LeadStatusHot       LeadStatus = "hot"
	LeadStatusWarm      LeadStatus = "warm"
	LeadStatusCold      LeadStatus = "cold"
	LeadStatusConverted LeadStatus = "converted"
)

func LeadStatuses() []LeadStatus {
	return []LeadStatus{LeadStatusHot, LeadStatusWarm, LeadStatusCold, LeadStatusConverted}
}

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusHot, LeadStatusWarm, LeadStatusCold, LeadStatusConverted:
		return true
	}
	return false
}

var (
	ErrLeadNotFound         = errors.New("lead não encontrado")
	ErrLeadAlreadyConverted = errors.New("lead já convertido")
)

type Lead struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Contact     string     `json:"contact"`
	Email       string     `json:"email"`
	Source      string     `json:"source"`
	Score       int        `json:"score"`
	Status      LeadStatus `json:"status"`
	CreatedDate time.Time  `json:"createdDate"`
}

// Convert aplica a única transição permitida: de hot/warm/cold para converted
func (l *Lead) Convert() error {
	if l.Status == LeadStatusConverted {
		return ErrLeadAlreadyConverted
	}
	l.Status = LeadStatusConverted
	return nil
}
