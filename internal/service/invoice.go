package service

import (
	"context"

	"github.com/billora/billora/internal/cache"
	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// InvoiceService manages the invoice ledger
type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)

	// SuggestInvoiceNumber returns a generated number not currently in use
	// by the owner; it is not reserved
	SuggestInvoiceNumber(ctx context.Context) (*dto.SuggestInvoiceNumberResponse, error)

	// GetInvoicePDF renders the persisted invoice as a PDF document
	GetInvoicePDF(ctx context.Context, id string) ([]byte, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx)

	// snapshot the default seller when the caller did not pick one
	if inv.SellerDetails == nil {
		if snap, err := s.defaultSellerSnapshot(ctx); err == nil {
			inv.SellerDetails = snap
		} else if !ierr.IsNotFound(err) {
			return nil, err
		}
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"grand_total", inv.GrandTotal)

	s.invalidateDashboard(ctx)
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != inv.Version {
		return nil, ierr.NewError("invoice was modified concurrently").
			WithHint("The invoice was changed by another request; reload and retry").
			WithReportableDetails(map[string]any{
				"expected_version": *req.Version,
				"current_version":  inv.Version,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	if req.Status != nil && !inv.Status.CanTransitionTo(*req.Status) {
		return nil, ierr.NewError("invalid status transition").
			WithHintf("An invoice cannot move from %s to %s", inv.Status, *req.Status).
			Mark(ierr.ErrValidation)
	}

	req.Apply(inv)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
		return &dto.InvoiceResponse{Invoice: inv}
	})
	resp := types.NewListResponse(items)
	return &resp, nil
}

func (s *invoiceService) SuggestInvoiceNumber(ctx context.Context) (*dto.SuggestInvoiceNumberResponse, error) {
	// retry a few times on the off chance the generated number collides
	for range 5 {
		number := types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE_NUMBER)
		_, err := s.InvoiceRepo.GetByInvoiceNumber(ctx, number)
		if err == nil {
			continue
		}
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		return &dto.SuggestInvoiceNumberResponse{InvoiceNumber: number}, nil
	}

	return nil, ierr.NewError("could not generate invoice number").
		WithHint("Failed to generate an unused invoice number, please retry").
		Mark(ierr.ErrSystem)
}

func (s *invoiceService) GetInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.PDFGenerator.RenderInvoicePDF(ctx, inv)
}

func (s *invoiceService) defaultSellerSnapshot(ctx context.Context) (*invoice.SellerSnapshot, error) {
	sl, err := s.SellerRepo.GetDefault(ctx)
	if err != nil {
		return nil, err
	}
	return &invoice.SellerSnapshot{
		BusinessName: sl.BusinessName,
		Address:      sl.Address,
		GSTIN:        sl.GSTIN,
		Phone:        sl.Phone,
		Email:        sl.Email,
	}, nil
}

// invalidateDashboard drops the owner's cached dashboard stats after any
// invoice write
func (s *invoiceService) invalidateDashboard(ctx context.Context) {
	s.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixDashboard, types.GetUserID(ctx)))
}
