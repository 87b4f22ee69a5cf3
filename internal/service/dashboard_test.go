package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/billora/billora/internal/dto"
	"github.com/billora/billora/internal/testutil"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service        DashboardService
	invoiceService InvoiceService
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := testServiceParams(&s.BaseServiceTestSuite)
	s.service = NewDashboardService(params)
	s.invoiceService = NewInvoiceService(params)
}

func (s *DashboardServiceSuite) createInvoice(number string, status types.InvoiceStatus, date time.Time, price int64) {
	_, err := s.invoiceService.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: number,
		CustomerName:  "Acme Corp",
		InvoiceDate:   &date,
		Status:        lo.ToPtr(status),
		Items: []dto.LineItemRequest{
			{Name: "Consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(price), GSTPercent: decimal.NewFromInt(18)},
		},
	})
	s.Require().NoError(err)
}

func (s *DashboardServiceSuite) TestGetStatsOverSeededInvoices() {
	now := time.Now().UTC()
	lastYear := now.AddDate(-1, 0, 0)

	// each invoice grand total is price * 1.18
	s.createInvoice("INV-100", types.InvoiceStatusPaid, now, 1000)    // 1180
	s.createInvoice("INV-101", types.InvoiceStatusSent, now, 2000)   // 2360
	s.createInvoice("INV-102", types.InvoiceStatusPaid, lastYear, 500) // 590

	stats, err := s.service.GetStats(s.GetContext())
	s.NoError(err)

	s.Equal(3, stats.TotalInvoices)

	// all-time paid sales
	s.True(stats.TotalSales.Equal(decimal.RequireFromString("1770")), "total sales: got %s", stats.TotalSales)

	// month-to-date sales include any status but not last year's invoice
	s.True(stats.MonthlySales.Equal(decimal.RequireFromString("3540")), "monthly sales: got %s", stats.MonthlySales)

	// year-to-date GST summary excludes last year's invoice
	s.True(stats.GSTSummary.TotalSales.Equal(decimal.RequireFromString("3540")))
	s.True(stats.GSTSummary.TotalGST.Equal(decimal.RequireFromString("540")))

	// trailing six months, oldest first, current month last
	s.Len(stats.MonthlyChartData, 6)
	s.Equal(now.Format("Jan"), stats.MonthlyChartData[5].Month)
	s.True(stats.MonthlyChartData[5].Total.Equal(decimal.RequireFromString("3540")))

	s.Len(stats.LastInvoices, 3)
	s.Equal("INV-102", stats.LastInvoices[2].InvoiceNumber)
}

func (s *DashboardServiceSuite) TestGetStatsEmptyLedger() {
	stats, err := s.service.GetStats(s.GetContext())
	s.NoError(err)

	s.Equal(0, stats.TotalInvoices)
	s.True(stats.TotalSales.IsZero())
	s.True(stats.MonthlySales.IsZero())
	s.True(stats.GSTSummary.TotalGST.IsZero())
	s.Len(stats.MonthlyChartData, 6)
	s.Empty(stats.LastInvoices)
}

func (s *DashboardServiceSuite) TestLastInvoicesCappedAtFive() {
	now := time.Now().UTC()
	for i := 0; i < 7; i++ {
		s.createInvoice(fmt.Sprintf("INV-2%02d", i), types.InvoiceStatusSent, now.Add(time.Duration(i)*time.Minute), 100)
	}

	stats, err := s.service.GetStats(s.GetContext())
	s.NoError(err)

	s.Require().Len(stats.LastInvoices, 5)
	// newest first
	s.Equal("INV-206", stats.LastInvoices[0].InvoiceNumber)
	s.Equal("INV-202", stats.LastInvoices[4].InvoiceNumber)
}

func (s *DashboardServiceSuite) TestStatsAreCachedAndInvalidatedOnWrite() {
	now := time.Now().UTC()
	s.createInvoice("INV-300", types.InvoiceStatusPaid, now, 1000)

	first, err := s.service.GetStats(s.GetContext())
	s.NoError(err)
	s.Equal(1, first.TotalInvoices)

	// a second read within the TTL is served from cache
	second, err := s.service.GetStats(s.GetContext())
	s.NoError(err)
	s.Same(first, second)

	// an invoice write drops the cached entry
	s.createInvoice("INV-301", types.InvoiceStatusPaid, now, 1000)

	third, err := s.service.GetStats(s.GetContext())
	s.NoError(err)
	s.Equal(2, third.TotalInvoices)
}

func (s *DashboardServiceSuite) TestStatsAreOwnerScoped() {
	now := time.Now().UTC()
	s.createInvoice("INV-400", types.InvoiceStatusPaid, now, 1000)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	stats, err := s.service.GetStats(otherCtx)
	s.NoError(err)
	s.Equal(0, stats.TotalInvoices)
	s.True(stats.TotalSales.IsZero())
}
