package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/billora/billora/internal/domain/invoice"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderInvoicePDF(ctx context.Context, inv *invoice.Invoice) ([]byte, error)
}

type generator struct{}

// NewGenerator creates a new PDF generator
func NewGenerator() Generator {
	return &generator{}
}

// money formats a decimal with two fractional digits. Needed only at this
// boundary; stored values keep full precision.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (g *generator) RenderInvoicePDF(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.InvoiceNumber), false)
	pdf.AddPage()

	// header
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(120, 12, "INVOICE")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(70, 12, inv.InvoiceNumber, "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(120, 5, "", "", 0, "", false, 0, "")
	pdf.CellFormat(70, 5, fmt.Sprintf("Date: %s", inv.InvoiceDate.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	if inv.DueDate != nil {
		pdf.CellFormat(120, 5, "", "", 0, "", false, 0, "")
		pdf.CellFormat(70, 5, fmt.Sprintf("Due: %s", inv.DueDate.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(120, 5, "", "", 0, "", false, 0, "")
	pdf.CellFormat(70, 5, fmt.Sprintf("Status: %s", inv.Status), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	// seller and buyer blocks side by side
	startY := pdf.GetY()
	if inv.SellerDetails != nil {
		s := inv.SellerDetails
		var gstin string
		if s.GSTIN != nil {
			gstin = "GSTIN: " + *s.GSTIN
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(95, 6, "From", "", 2, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, line := range []string{
			s.BusinessName,
			deref(s.Address),
			gstin,
			deref(s.Phone),
			deref(s.Email),
		} {
			if line != "" {
				pdf.CellFormat(95, 5, line, "", 2, "L", false, 0, "")
			}
		}
	}
	sellerEndY := pdf.GetY()

	pdf.SetXY(105, startY)
	var buyerGSTIN string
	if inv.CustomerGSTIN != nil {
		buyerGSTIN = "GSTIN: " + *inv.CustomerGSTIN
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(95, 6, "Bill To", "", 0, "L", false, 0, "")
	pdf.SetXY(105, startY+6)
	pdf.SetFont("Arial", "", 9)
	for _, line := range []string{
		inv.CustomerName,
		deref(inv.CustomerAddress),
		buyerGSTIN,
		deref(inv.CustomerPhone),
		deref(inv.CustomerEmail),
	} {
		if line != "" {
			y := pdf.GetY()
			pdf.SetX(105)
			pdf.CellFormat(95, 5, line, "", 0, "L", false, 0, "")
			pdf.SetY(y + 5)
		}
	}
	if pdf.GetY() < sellerEndY {
		pdf.SetY(sellerEndY)
	}
	pdf.Ln(6)

	// line item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(60, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(22, 7, "HSN", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(28, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(18, 7, "GST %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(44, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, item := range inv.Items {
		pdf.CellFormat(60, 6, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, deref(item.HSNCode), "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, item.GSTPercent.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(44, 6, money(item.LineTotal), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	// totals
	writeTotal := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(128, 6, "", "", 0, "", false, 0, "")
		pdf.CellFormat(28, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(34, 6, value, "", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", money(inv.Subtotal), false)
	writeTotal("GST", money(inv.TotalGST), false)
	writeTotal("Total", money(inv.GrandTotal), true)

	if inv.Notes != nil && *inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(190, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(190, 5, *inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to render invoice PDF").
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}
