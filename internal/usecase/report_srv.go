package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/repository"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportService interface {
	// Bookings builds an xlsx attendance report for classes in the
	// inclusive date range. Returns the file bytes and a suggested
	// filename.
	Bookings(ctx context.Context, from, to time.Time) ([]byte, string, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) Bookings(ctx context.Context, from, to time.Time) ([]byte, string, error) {
	rows, err := s.repo.Booking.ListForReport(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to load report rows", zap.Error(err))
		return nil, "", fmt.Errorf("failed to load report data")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"date",
		"start_time",
		"class",
		"client",
		"phone",
		"status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("write report header: %w", err)
	}

	rowIdx := 2
	for _, row := range rows {
		excelRow := []interface{}{
			row.Date.Format("2006-01-02"),
			row.StartTime,
			row.ClassName,
			row.UserName,
			row.UserPhone,
			string(row.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, "", fmt.Errorf("resolve report cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, "", fmt.Errorf("write report row: %w", err)
		}
		rowIdx++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		s.log.Error("Failed to write report file", zap.Error(err))
		return nil, "", fmt.Errorf("failed to write report")
	}

	filename := fmt.Sprintf("bookings_%s_%s.xlsx",
		from.Format("20060102"), to.Format("20060102"))

	s.log.Info("Bookings report generated",
		zap.String("from", from.Format("2006-01-02")),
		zap.String("to", to.Format("2006-01-02")),
		zap.Int("rows", len(rows)))

	return buf.Bytes(), filename, nil
}
