package importing

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

const columnCount = 12

const utf8BOM = "\ufeff"

var ErrReadCSV = errors.New("erro ao ler o arquivo CSV")

// Cabeçalho da exportação, na mesma ordem das colunas da importação
var exportHeader = []string{
	"会社名", "プラン", "月額料金", "初期費用", "運用代行費", "担当者",
	"工数", "地域", "業界", "獲得チャネル", "ステータス", "契約開始日",
}

// ImportResult resume a importação. Linhas ignoradas não chegam ao serviço
// de persistência; linhas com falha chegaram e foram recusadas.
type ImportResult struct {
	Imported   int   `json:"imported"`
	Skipped    int   `json:"skipped"`
	Failed     int   `json:"failed"`
	FailedRows []int `json:"failedRows"`
}

type ImportService interface {
	Import(ctx context.Context, r io.Reader) (ImportResult, error)
	Export(ctx context.Context, w io.Writer) error
}

type Service struct {
	customers subscribing.CustomerService
}

func NewService(customers subscribing.CustomerService) ImportService {
	return &Service{
		customers: customers,
	}
}

// Import lê o CSV de 12 colunas e cria cada cliente pelo fluxo normal de
// criação. Uma linha de cabeçalho no início é detectada e descartada.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	logger := log.ForContext(ctx)
	result := ImportResult{FailedRows: []int{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, errors.Join(ErrReadCSV, err)
		}
		row++

		if row == 1 {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
			if isHeader(record) {
				continue
			}
		}

		if isBlank(record) {
			continue
		}

		if len(record) < columnCount || strings.TrimSpace(record[0]) == "" {
			result.Skipped++
			logger.Debugf("import: linha %d ignorada (%d colunas)", row, len(record))
			continue
		}

		if _, err := s.customers.Create(ctx, toInput(record)); err != nil {
			result.Failed++
			result.FailedRows = append(result.FailedRows, row)
			logger.WithError(err).Warnf("import: linha %d recusada", row)
			continue
		}
		result.Imported++
	}

	logger.Infof("import: %d importados, %d ignorados, %d com falha", result.Imported, result.Skipped, result.Failed)

	return result, nil
}

// Export grava os clientes do store com cabeçalho em japonês e BOM para o Excel
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	customers := s.customers.List()
	for _, c := range customers {
		if err := writer.Write(toRecord(c)); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	log.ForContext(ctx).Infof("export: %d clientes exportados", len(customers))
	return nil
}

func toInput(record []string) subscribing.CustomerInput {
	field := func(i int) string {
		return strings.TrimSpace(record[i])
	}

	plan := field(1)
	if plan == "" {
		plan = string(domain.PlanStarter)
	}

	return subscribing.CustomerInput{
		Name:         field(0),
		Plan:         plan,
		MRR:          utils.ParseFloatOrZero(field(2)),
		InitialFee:   utils.ParseFloatOrZero(field(3)),
		OperationFee: utils.ParseFloatOrZero(field(4)),
		Assignee:     field(5),
		Hours:        utils.ParseFloatOrZero(field(6)),
		Region:       field(7),
		Industry:     field(8),
		Channel:      field(9),
		Status:       field(10),
		StartDate:    field(11),
	}
}

func toRecord(c domain.Customer) []string {
	return []string{
		c.Name,
		c.Plan.Label(),
		formatNumber(c.MRR),
		formatNumber(c.InitialFee),
		formatNumber(c.OperationFee),
		c.Assignee,
		formatNumber(c.Hours),
		c.Region,
		c.Industry,
		c.Channel,
		string(c.Status),
		utils.FormatDate(c.StartDate),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// isHeader reconhece o cabeçalho em japonês ou em inglês
func isHeader(record []string) bool {
	first := strings.ToLower(strings.TrimSpace(record[0]))
	if first == "name" || first == exportHeader[0] {
		return true
	}
	if len(record) > 2 {
		mrr := strings.ToLower(strings.TrimSpace(record[2]))
		return mrr == "mrr" || mrr == exportHeader[2]
	}
	return false
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
