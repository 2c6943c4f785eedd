package infra

// xlsx.go — deal report workbook using xuri/excelize.
// One "Deals" sheet: bold shaded header, one row per deal, a totals row at the bottom.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"brokerbook/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Deals"

var reportHeaders = []string{
	"Deal ID", "Confirmation Date", "Supplier", "Buyer", "Product",
	"Quantity", "Unit", "Rate", "Amount (excl. GST)", "Discount",
	"GST", "Total Amount", "Brokerage", "Status",
}

// WriteDealReportXLSX renders report as an .xlsx workbook into w.
func WriteDealReportXLSX(w io.Writer, report *dto.DealReportResponse) error {
	f, err := buildDealReport(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

// SaveDealReportXLSX writes the workbook to dir/name and returns the full path.
func SaveDealReportXLSX(dir, name string, report *dto.DealReportResponse) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("xlsx: create export dir: %w", err)
	}
	path := filepath.Join(dir, name)

	f, err := buildDealReport(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx: save: %w", err)
	}
	return path, nil
}

func buildDealReport(report *dto.DealReportResponse) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: drop default sheet: %w", err)
	}

	for i, h := range reportHeaders {
		if err := setCell(f, i+1, 1, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(reportSheet, 1, 1, headerStyle)
	}

	row := 2
	for _, d := range report.Deals {
		values := []any{
			d.ID,
			d.ConfirmationDate.Format(dto.DateLayout),
			d.SupplierName,
			d.BuyerName,
			d.ProductName,
			num(d.Quantity),
			string(d.Unit),
			num(d.Rate),
			num(d.AmountWithoutGST),
			num(d.DiscountAmount),
			num(d.GSTAmount),
			num(d.TotalAmount),
			num(d.BrokerageAmount),
			string(d.PaymentStatus),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				f.Close()
				return nil, err
			}
		}
		row++
	}

	// Totals under the matching columns: GST=K, Total=L, Brokerage=M.
	totals := map[int]any{
		1:  fmt.Sprintf("Totals (%d deals)", report.Totals.TotalDeals),
		11: num(report.Totals.TotalGST),
		12: num(report.Totals.TotalAmount),
		13: num(report.Totals.TotalBrokerage),
	}
	for col, v := range totals {
		if err := setCell(f, col, row, v); err != nil {
			f.Close()
			return nil, err
		}
	}
	if headerStyle != 0 {
		_ = f.SetRowStyle(reportSheet, row, row, headerStyle)
	}

	_ = f.SetColWidth(reportSheet, "A", "N", 16)
	return f, nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(reportSheet, cell, v)
}

// num converts for spreadsheet display only; stored amounts stay exact.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
