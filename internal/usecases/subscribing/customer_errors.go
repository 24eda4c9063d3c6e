package subscribing

import (
	"errors"
	"fmt"
)

var (
	ErrFetchCustomers  = errors.New("falha ao buscar clientes no serviço de persistência")
	ErrCreateCustomer  = errors.New("falha ao salvar cliente no serviço de persistência")
	ErrDeleteCustomer  = errors.New("falha ao remover cliente no serviço de persistência")
	ErrInvalidCustomer = errors.New("dados do cliente inválidos")
)

// CustomerError carrega o código da API e o cliente envolvido
type CustomerError struct {
	Err        error
	Code       string
	CustomerID int
	Details    string
}

func (e *CustomerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CustomerError) Unwrap() error {
	return e.Err
}

func NewCustomerError(err error, code string, details string) *CustomerError {
	return &CustomerError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewCustomerErrorWithID(err error, code string, customerID int, details string) *CustomerError {
	return &CustomerError{
		Err:        err,
		Code:       code,
		CustomerID: customerID,
		Details:    details,
	}
}
