package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"resaletrack/internal/domain"
	"resaletrack/internal/port"
	"resaletrack/internal/reporting"
)

// ReportService produces profitability reports.
type ReportService interface {
	Generate(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)
}

type reportService struct {
	itemRepo port.ItemRepository
	engine   *reporting.Engine
	now      func() time.Time
	log      *zap.Logger
}

// NewReportService creates a new ReportService implementation. now supplies
// the current instant in the zone "today" is evaluated in.
func NewReportService(itemRepo port.ItemRepository, engine *reporting.Engine, now func() time.Time, log *zap.Logger) ReportService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reportService{itemRepo: itemRepo, engine: engine, now: now, log: log}
}

// Generate builds the report from a single consistent read of the items.
// Any storage failure is returned wrapped in domain.ErrReportUnavailable.
func (s *reportService) Generate(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	today := s.now()
	start := time.Now()

	var report *domain.Report
	err := s.itemRepo.ReadSnapshot(ctx, func(r port.ItemReader) error {
		var genErr error
		report, genErr = s.engine.Generate(ctx, r, req, today)
		return genErr
	})
	if err != nil {
		s.log.Error("report generation failed",
			zap.String("range", req.RangeKey),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrReportUnavailable, err)
	}

	s.log.Debug("report generated",
		zap.String("range", string(report.Range.Key)),
		zap.Int("total_items", report.KPIs.TotalItems),
		zap.Int("sold_items", report.KPIs.SoldItems),
		zap.Int("top_items", len(report.TopItems)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}
