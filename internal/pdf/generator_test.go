package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoice() *invoice.Invoice {
	items, totals := invoice.ComputeTotals([]invoice.LineItem{
		{Name: "Consulting", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), GSTPercent: decimal.NewFromInt(18)},
		{Name: "Paper reams", Quantity: 3, UnitPrice: decimal.NewFromInt(800), GSTPercent: decimal.NewFromInt(5)},
	})
	return &invoice.Invoice{
		ID:            "inv_test",
		InvoiceNumber: "INV-042",
		CustomerName:  "Acme Corp",
		CustomerGSTIN: lo.ToPtr("27AAPFU0939F1ZV"),
		SellerDetails: &invoice.SellerSnapshot{
			BusinessName: "Sharma Traders",
			GSTIN:        lo.ToPtr("22AAAAA0000A1Z5"),
		},
		Items:       items,
		Subtotal:    totals.Subtotal,
		TotalGST:    totals.TotalGST,
		GrandTotal:  totals.GrandTotal,
		InvoiceDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     lo.ToPtr(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)),
		Status:      types.InvoiceStatusSent,
		Notes:       lo.ToPtr("Payment due within 30 days"),
	}
}

func TestRenderInvoicePDF(t *testing.T) {
	g := NewGenerator()

	data, err := g.RenderInvoicePDF(context.Background(), testInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderInvoicePDFWithoutOptionalBlocks(t *testing.T) {
	g := NewGenerator()

	inv := testInvoice()
	inv.SellerDetails = nil
	inv.Items = nil
	inv.Notes = nil
	inv.DueDate = nil
	inv.Subtotal = decimal.Zero
	inv.TotalGST = decimal.Zero
	inv.GrandTotal = decimal.Zero
	inv.Status = types.InvoiceStatusDraft

	data, err := g.RenderInvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestMoneyRoundsToTwoDecimals(t *testing.T) {
	assert.Equal(t, "33.94", money(decimal.RequireFromString("33.936")))
	assert.Equal(t, "1000.00", money(decimal.NewFromInt(1000)))
}
