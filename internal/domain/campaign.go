package domain

import (
	"errors"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

var (
	ErrCampaignNotFound     = errors.New("campanha não encontrada")
	ErrCampaignInvalidRange = errors.New("data final da campanha anterior à data inicial")
)

type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Channel     string         `json:"channel"`
	Budget      float64        `json:"budget"`
	Spent       float64        `json:"spent"`
	Leads       int            `json:"leads"`
	Conversions int            `json:"conversions"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
	Status      CampaignStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (c Campaign) Validate() error {
	if DateOnly(c.EndDate).Before(DateOnly(c.StartDate)) {
		return ErrCampaignInvalidRange
	}
	return nil
}

// RunningOn indica se o dia informado está dentro do intervalo da campanha
func (c Campaign) RunningOn(t time.Time) bool {
	day := DateOnly(t)
	return !DateOnly(c.StartDate).After(day) && !DateOnly(c.EndDate).Before(day)
}
