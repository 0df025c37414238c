package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/asklio/procurement/constants"
	"github.com/asklio/procurement/internal/entity"
	"github.com/asklio/procurement/internal/repository"
)

// Service is a tiny façade over the request repository that produces XLSX
// bytes for exports.
type Service struct {
	repo   repository.RequestRepository
	logger *slog.Logger
}

func NewService(repo repository.RequestRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportRequestsXLSX returns an XLSX workbook (as bytes) with one row per
// procurement request, optionally filtered by status. Order lines are
// flattened into a single cell so the sheet stays one-row-per-request.
func (s *Service) ExportRequestsXLSX(ctx context.Context, status *constants.RequestStatus) ([]byte, error) {
	start := time.Now()

	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	if status != nil {
		filtered := recs[:0]
		for _, r := range recs {
			if r.Status == *status {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}

	f := excelize.NewFile()
	const sheet = "Requests"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Created",
		"Status",
		"Requestor",
		"Department",
		"Vendor",
		"Commodity Group",
		"Category",
		"Description",
		"VAT ID",
		"Order Lines",
		"Total Cost",
		"Document",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !r.CreatedAt.IsZero() {
			write(1, r.CreatedAt.UTC().Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, string(r.Status))
		write(3, derefOr(r.Requestor, ""))
		write(4, derefOr(r.RequestorDepartment, ""))
		write(5, derefOr(r.Vendor, ""))
		write(6, derefOr(r.CommodityGroup, ""))
		write(7, derefOr(r.Category, ""))
		write(8, truncate(derefOr(r.Description, ""), 140))
		write(9, derefOr(r.VATID, ""))
		write(10, formatOrderLines(r.OrderLines))
		if r.TotalCost != nil {
			write(11, *r.TotalCost)
		} else {
			write(11, "")
		}
		write(12, r.Document.FileName)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 12) // status
	_ = f.SetColWidth(sheet, "C", "E", 22) // people and vendor
	_ = f.SetColWidth(sheet, "F", "G", 24) // taxonomy
	_ = f.SetColWidth(sheet, "H", "H", 48) // description
	_ = f.SetColWidth(sheet, "J", "J", 60) // order lines
	_ = f.SetColWidth(sheet, "L", "L", 32) // file name

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(recs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// formatOrderLines renders each line as "2x Widget @ 10.00 = 20.00",
// joined with "; ". Missing values render as "?".
func formatOrderLines(lines []entity.OrderLine) string {
	if len(lines) == 0 {
		return ""
	}
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		qty := "?"
		if l.Quantity != nil {
			qty = fmt.Sprintf("%d", *l.Quantity)
		}
		product := derefOr(l.Product, "?")
		unit := "?"
		if l.UnitPrice != nil {
			unit = fmt.Sprintf("%.2f", *l.UnitPrice)
		}
		total := "?"
		if l.TotalCost != nil {
			total = fmt.Sprintf("%.2f", *l.TotalCost)
		}
		parts = append(parts, fmt.Sprintf("%sx %s @ %s = %s", qty, product, unit, total))
	}
	return strings.Join(parts, "; ")
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
