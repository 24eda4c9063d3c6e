package reporting

import "errors"

var (
	ErrSaveSnapshot = errors.New("erro ao gravar snapshot de MRR")
	ErrListPeriods  = errors.New("erro ao listar períodos com snapshot")
)
