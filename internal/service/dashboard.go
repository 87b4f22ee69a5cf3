package service

import (
	"context"
	"time"

	"github.com/billora/billora/internal/cache"
	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/dto"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

const (
	dashboardCacheTTL  = 2 * time.Minute
	dashboardRecentN   = 5
	dashboardChartSpan = 6
)

// DashboardService produces the owner's invoice activity summary
type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	key := cache.GenerateKey(cache.PrefixDashboard, types.GetUserID(ctx))
	if cached, found := s.Cache.Get(ctx, key); found {
		if stats, ok := cached.(*dto.DashboardStatsResponse); ok {
			return stats, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, key, stats, dashboardCacheTTL)
	return stats, nil
}

// computeStats runs the independent aggregations concurrently; every sum is
// over persisted invoice totals.
func (s *dashboardService) computeStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	stats := &dto.DashboardStatsResponse{
		TotalSales:       decimal.Zero,
		MonthlySales:     decimal.Zero,
		MonthlyChartData: make([]dto.MonthlySales, dashboardChartSpan),
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		total, err := s.InvoiceRepo.Count(ctx)
		if err != nil {
			return err
		}
		stats.TotalInvoices = total
		return nil
	})

	// all-time sales across paid invoices
	p.Go(func(ctx context.Context) error {
		agg, err := s.InvoiceRepo.SumTotals(ctx, invoice.TotalsQuery{
			Status: lo.ToPtr(types.InvoiceStatusPaid),
		})
		if err != nil {
			return err
		}
		stats.TotalSales = agg.GrandTotal
		return nil
	})

	// month-to-date sales, any status
	p.Go(func(ctx context.Context) error {
		agg, err := s.InvoiceRepo.SumTotals(ctx, invoice.TotalsQuery{
			From: &startOfMonth,
		})
		if err != nil {
			return err
		}
		stats.MonthlySales = agg.GrandTotal
		return nil
	})

	// year-to-date GST summary
	p.Go(func(ctx context.Context) error {
		agg, err := s.InvoiceRepo.SumTotals(ctx, invoice.TotalsQuery{
			From: &startOfYear,
		})
		if err != nil {
			return err
		}
		stats.GSTSummary = dto.GSTSummary{
			TotalGST:   agg.TotalGST,
			TotalSales: agg.GrandTotal,
		}
		return nil
	})

	// trailing six months, oldest first
	for i := 0; i < dashboardChartSpan; i++ {
		monthsAgo := dashboardChartSpan - 1 - i
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -monthsAgo, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

		p.Go(func(ctx context.Context) error {
			agg, err := s.InvoiceRepo.SumTotals(ctx, invoice.TotalsQuery{
				From: &monthStart,
				To:   &monthEnd,
			})
			if err != nil {
				return err
			}
			stats.MonthlyChartData[i] = dto.MonthlySales{
				Month: monthStart.Format("Jan"),
				Total: agg.GrandTotal,
			}
			return nil
		})
	}

	p.Go(func(ctx context.Context) error {
		recent, err := s.InvoiceRepo.List(ctx, &types.InvoiceFilter{
			Limit: lo.ToPtr(dashboardRecentN),
		})
		if err != nil {
			return err
		}
		stats.LastInvoices = lo.Map(recent, func(inv *invoice.Invoice, _ int) dto.RecentInvoice {
			return dto.RecentInvoice{
				ID:            inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				CustomerName:  inv.CustomerName,
				GrandTotal:    inv.GrandTotal,
				Status:        inv.Status,
				InvoiceDate:   inv.InvoiceDate,
			}
		})
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
