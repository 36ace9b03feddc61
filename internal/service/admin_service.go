package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aldanbek/gigworks-billing/internal/config"
	"github.com/aldanbek/gigworks-billing/internal/model"
)

type ExcelGenerator interface {
	Generate(report model.EarningsReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(report model.EarningsReport) ([]byte, error)
}

type AdminService struct {
	reports      ReportStore
	excel        ExcelGenerator
	pdf          PDFGenerator
	clientsLimit int
	log          zerolog.Logger
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewAdminService(reports ReportStore, excel ExcelGenerator, pdf PDFGenerator, cfg *config.Config, log zerolog.Logger) *AdminService {
	return &AdminService{
		reports:      reports,
		excel:        excel,
		pdf:          pdf,
		clientsLimit: cfg.Billing.BestClientsLimit,
		log:          log,
	}
}

// BestProfession returns the profession that earned the most from paid jobs in
// the period. Ties resolve to the lexicographically smallest profession, which
// the store's ordering already guarantees.
func (s *AdminService) BestProfession(ctx context.Context, start, end time.Time) (*model.ProfessionEarnings, error) {
	if err := checkPeriod(start, end); err != nil {
		return nil, err
	}
	rows, err := s.reports.ProfessionEarnings(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no paid jobs in the given period", ErrNotFound)
	}
	best := rows[0]
	return &best, nil
}

// BestClients returns clients ranked by total paid in the period, truncated to
// limit (the configured default when limit is not positive).
func (s *AdminService) BestClients(ctx context.Context, start, end time.Time, limit int) ([]model.ClientPayment, error) {
	if err := checkPeriod(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.clientsLimit
	}
	rows, err := s.reports.ClientPayments(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no paying clients in the given period", ErrNotFound)
	}
	return rows, nil
}

func (s *AdminService) ExportBestClients(ctx context.Context, start, end time.Time, limit int) (*ExportResult, error) {
	report, err := s.buildEarningsReport(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: exportFileName(start, end, "xlsx"), Content: content}, nil
}

func (s *AdminService) ExportBestClientsPDF(ctx context.Context, start, end time.Time, limit int) (*ExportResult, error) {
	report, err := s.buildEarningsReport(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: exportFileName(start, end, "pdf"), Content: content}, nil
}

func (s *AdminService) buildEarningsReport(ctx context.Context, start, end time.Time, limit int) (*model.EarningsReport, error) {
	clients, err := s.BestClients(ctx, start, end, limit)
	if err != nil {
		return nil, err
	}
	return &model.EarningsReport{
		PeriodStart: start,
		PeriodEnd:   end,
		Clients:     clients,
	}, nil
}

func exportFileName(start, end time.Time, extension string) string {
	return fmt.Sprintf("best-clients-%s-%s.%s", start.Format("20060102"), end.Format("20060102"), extension)
}

func checkPeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: period dates are required", ErrInvalidInput)
	}
	if start.After(end) {
		return fmt.Errorf("%w: start date is after end date", ErrInvalidInput)
	}
	return nil
}
