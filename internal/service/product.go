package service

import (
	"context"

	"github.com/billora/billora/internal/domain/product"
	"github.com/billora/billora/internal/dto"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// ProductService manages the owner's product catalog
type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, search string) (*dto.ListProductsResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{
		ServiceParams: params,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToProduct(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProductRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: p}, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	return s.ProductRepo.Delete(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, search string) (*dto.ListProductsResponse, error) {
	products, err := s.ProductRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	items := lo.Map(products, func(p *product.Product, _ int) *dto.ProductResponse {
		return &dto.ProductResponse{Product: p}
	})
	resp := types.NewListResponse(items)
	return &resp, nil
}
