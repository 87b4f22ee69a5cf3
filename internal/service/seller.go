package service

import (
	"context"

	"github.com/billora/billora/internal/domain/seller"
	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// SellerService manages the owner's seller profiles and the default flag
type SellerService interface {
	CreateSeller(ctx context.Context, req dto.CreateSellerRequest) (*dto.SellerResponse, error)
	GetSeller(ctx context.Context, id string) (*dto.SellerResponse, error)
	UpdateSeller(ctx context.Context, id string, req dto.UpdateSellerRequest) (*dto.SellerResponse, error)
	DeleteSeller(ctx context.Context, id string) error
	ListSellers(ctx context.Context, search string) (*dto.ListSellersResponse, error)

	// GetDefaultSeller resolves the profile new invoices snapshot their
	// seller block from
	GetDefaultSeller(ctx context.Context) (*dto.SellerResponse, error)
}

type sellerService struct {
	ServiceParams
}

func NewSellerService(params ServiceParams) SellerService {
	return &sellerService{
		ServiceParams: params,
	}
}

func (s *sellerService) CreateSeller(ctx context.Context, req dto.CreateSellerRequest) (*dto.SellerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sl := req.ToSeller(ctx)
	if err := sl.Validate(); err != nil {
		return nil, err
	}

	// the first seller always becomes the default
	count, err := s.SellerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		sl.IsDefault = true
	}

	if err := s.SellerRepo.Create(ctx, sl); err != nil {
		return nil, err
	}

	if sl.IsDefault && count > 0 {
		if err := s.SellerRepo.ClearDefault(ctx, sl.ID); err != nil {
			return nil, err
		}
	}
	return &dto.SellerResponse{Seller: sl}, nil
}

func (s *sellerService) GetSeller(ctx context.Context, id string) (*dto.SellerResponse, error) {
	sl, err := s.SellerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SellerResponse{Seller: sl}, nil
}

func (s *sellerService) UpdateSeller(ctx context.Context, id string, req dto.UpdateSellerRequest) (*dto.SellerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sl, err := s.SellerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	wasDefault := sl.IsDefault
	req.Apply(sl)
	if err := sl.Validate(); err != nil {
		return nil, err
	}

	if err := s.SellerRepo.Update(ctx, sl); err != nil {
		return nil, err
	}

	// newly flagged default demotes every other seller
	if sl.IsDefault && !wasDefault {
		if err := s.SellerRepo.ClearDefault(ctx, sl.ID); err != nil {
			return nil, err
		}
	}
	return &dto.SellerResponse{Seller: sl}, nil
}

func (s *sellerService) DeleteSeller(ctx context.Context, id string) error {
	return s.SellerRepo.Delete(ctx, id)
}

func (s *sellerService) ListSellers(ctx context.Context, search string) (*dto.ListSellersResponse, error) {
	sellers, err := s.SellerRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	items := lo.Map(sellers, func(sl *seller.Seller, _ int) *dto.SellerResponse {
		return &dto.SellerResponse{Seller: sl}
	})
	resp := types.NewListResponse(items)
	return &resp, nil
}

func (s *sellerService) GetDefaultSeller(ctx context.Context) (*dto.SellerResponse, error) {
	sl, err := s.SellerRepo.GetDefault(ctx)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("no seller profile").
				WithHint("Create a seller profile first").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return &dto.SellerResponse{Seller: sl}, nil
}
