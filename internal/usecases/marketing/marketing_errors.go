package marketing

import (
	"errors"
	"fmt"
)

var (
	ErrFetchCampaigns = errors.New("erro ao buscar campanhas no banco de dados")
	ErrFetchLeads     = errors.New("erro ao buscar leads no banco de dados")
	ErrSaveCampaign   = errors.New("erro ao gravar campanha no banco de dados")
	ErrSaveLead       = errors.New("erro ao gravar lead no banco de dados")
	ErrInvalidInput   = errors.New("dados de marketing inválidos")
	ErrGenerateID     = errors.New("erro ao gerar ID")
)

// MarketingError é um erro com contexto adicional para campanhas e leads
type MarketingError struct {
	Err      error
	Code     string
	EntityID string
	Details  string
}

func (e *MarketingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *MarketingError) Unwrap() error {
	return e.Err
}

func NewMarketingError(err error, code string, details string) *MarketingError {
	return &MarketingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewMarketingErrorWithID(err error, code string, entityID string, details string) *MarketingError {
	return &MarketingError{
		Err:      err,
		Code:     code,
		EntityID: entityID,
		Details:  details,
	}
}
