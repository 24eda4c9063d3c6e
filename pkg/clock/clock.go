package clock

import "time"

// Clock abstrai a leitura do horário atual para que cálculos dependentes de "agora"
// possam ser fixados em testes
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// New retorna o relógio do sistema
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed é um relógio parado em um instante específico
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
