package dto

import (
	"time"

	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
)

// GSTSummary is the year-to-date tax summary across all statuses
type GSTSummary struct {
	TotalGST   decimal.Decimal `json:"total_gst"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// MonthlySales is one bar of the trailing six month chart
type MonthlySales struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// RecentInvoice is a trimmed invoice row for the dashboard list
type RecentInvoice struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	CustomerName  string              `json:"customer_name"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
	Status        types.InvoiceStatus `json:"status"`
	InvoiceDate   time.Time           `json:"invoice_date"`
}

// DashboardStatsResponse aggregates the owner's invoice activity. All sums
// are over persisted invoice totals; items are never re-read.
type DashboardStatsResponse struct {
	TotalInvoices    int             `json:"total_invoices"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	MonthlySales     decimal.Decimal `json:"monthly_sales"`
	GSTSummary       GSTSummary      `json:"gst_summary"`
	MonthlyChartData []MonthlySales  `json:"monthly_chart_data"`
	LastInvoices     []RecentInvoice `json:"last_invoices"`
}
