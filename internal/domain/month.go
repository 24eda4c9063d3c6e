package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidPeriod = errors.New("período inválido")

// Month identifica um mês de calendário. O formato textual segue o padrão
// de períodos da API: mm-yyyy
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1 {
		return Month{}, fmt.Errorf("%w: %02d-%04d", ErrInvalidPeriod, month, year)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// ParsePeriod interpreta um período no formato mm-yyyy
func ParsePeriod(period string) (Month, error) {
	parts := strings.Split(period, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 4 {
		return Month{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, fmt.Errorf("%w: %s", ErrInvalidPeriod, period)
	}
	return NewMonth(year, month)
}

func (m Month) Period() string {
	return fmt.Sprintf("%02d-%04d", int(m.Month), m.Year)
}

func (m Month) String() string {
	return m.Period()
}

// FirstDay retorna o primeiro dia do mês à meia-noite UTC
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay retorna o último dia do mês à meia-noite UTC
func (m Month) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

func (m Month) AddMonths(n int) Month {
	return MonthOf(m.FirstDay().AddDate(0, n, 0))
}

func (m Month) Prev() Month {
	return m.AddMonths(-1)
}

func (m Month) Next() Month {
	return m.AddMonths(1)
}

func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// DateOnly descarta o horário e normaliza para UTC
func DateOnly(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
