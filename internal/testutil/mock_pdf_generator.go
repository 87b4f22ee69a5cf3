package testutil

import (
	"context"

	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/pdf"
)

// MockPDFGenerator implements pdf.Generator without rendering anything
type MockPDFGenerator struct {
	logger *logger.Logger
}

func NewMockPDFGenerator(logger *logger.Logger) pdf.Generator {
	return &MockPDFGenerator{logger: logger}
}

func (g *MockPDFGenerator) RenderInvoicePDF(ctx context.Context, inv *invoice.Invoice) ([]byte, error) {
	g.logger.Debugw("rendering mock pdf", "invoice_id", inv.ID)
	return []byte("%PDF-1.4 mock " + inv.InvoiceNumber), nil
}
