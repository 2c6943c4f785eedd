package infra

// pdf.go — deal note using go-pdf/fpdf.
// A4 portrait page with:
//   - Deal number and confirmation date
//   - Supplier / buyer / product
//   - Pricing terms and the frozen amounts
//   - Delivery progress table with running remaining quantity
//   - Reconciliation totals and payment status

import (
	"fmt"
	"io"

	"brokerbook/internal/dto"
	"brokerbook/internal/ledger"
	"brokerbook/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// WriteDealNotePDF renders the deal note for deal and its reconciliation summary into w.
func WriteDealNotePDF(w io.Writer, deal *model.DealView, summary *ledger.Summary) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, fmt.Sprintf("Deal Note #%d", deal.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Confirmed "+deal.ConfirmationDate.Format(dto.DateLayout)+"   Status: "+string(deal.PaymentStatus), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Parties ──────────────────────────────────────────────────────────────
	labelW := contentW * 0.3
	valueW := contentW - labelW
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, 6, value, "", 1, "L", false, 0, "")
	}
	row("Supplier", deal.SupplierName)
	row("Buyer", deal.BuyerName)
	row("Product", deal.ProductName)
	row("Quantity", deal.Quantity.String()+" "+string(deal.Unit))
	row("Rate", money(deal.Rate)+rateSuffix(deal))
	if deal.CalculationMode == model.CalcPerKg {
		row("Total weight", deal.TotalKg.String()+" kg")
	}
	pdf.Ln(3)

	// ── Amounts ──────────────────────────────────────────────────────────────
	amountRow := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.CellFormat(contentW*0.7, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, money(v), "", 1, "R", false, 0, "")
	}
	amountRow("Amount (excl. GST)", deal.AmountWithoutGST, false)
	if !deal.DiscountAmount.IsZero() {
		amountRow("Discount ("+deal.DiscountPercent.String()+"%)", deal.DiscountAmount.Neg(), false)
	}
	amountRow("Amount after discount", deal.AmountAfterDiscount, false)
	amountRow("GST ("+deal.GSTPercent.String()+"%)", deal.GSTAmount, false)
	amountRow("Total", deal.TotalAmount, true)
	amountRow("Brokerage", deal.BrokerageAmount, true)
	pdf.Ln(4)

	// ── Deliveries ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Deliveries", "", 1, "L", false, 0, "")

	cols := []struct {
		title string
		width float64
		align string
	}{
		{"Date", 0.18, "L"},
		{"Bill No.", 0.22, "L"},
		{"Delivered", 0.15, "R"},
		{"Cumulative", 0.15, "R"},
		{"Remaining", 0.15, "R"},
		{"Payment", 0.15, "C"},
	}
	pdf.SetFont("Helvetica", "B", 8)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(contentW*c.width, 6, c.title, "B", ln, c.align, false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 8)
	if len(summary.Progress) == 0 {
		pdf.CellFormat(contentW, 6, "No deliveries recorded", "", 1, "L", false, 0, "")
	}
	for _, p := range summary.Progress {
		values := []string{
			p.DeliveryDate.Format(dto.DateLayout),
			p.BillNumber,
			p.BagsDelivered.String(),
			p.CumulativeDelivered.String(),
			p.RemainingAfter.String(),
			string(p.PaymentStatus),
		}
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(contentW*c.width, 5, values[i], "", ln, c.align, false, 0, "")
		}
	}
	pdf.Ln(3)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Reconciliation ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	row("Delivered", summary.TotalBagsDelivered.String()+" of "+summary.OrderedQuantity.String())
	row("Remaining", summary.RemainingBags.String())
	row("Delivered value", money(summary.TotalAmount))
	row("Brokerage earned", money(summary.TotalBrokerage))
	row("Payment", string(summary.PaymentStatus))
	if summary.OverDelivered {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(contentW, 5, "Over-delivered against the ordered quantity.", "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write: %w", err)
	}
	return nil
}

func money(d decimal.Decimal) string {
	return "Rs " + d.StringFixed(2)
}

func rateSuffix(d *model.DealView) string {
	if d.CalculationMode == model.CalcPerKg {
		return " per kg"
	}
	return " per " + string(d.Unit)
}
