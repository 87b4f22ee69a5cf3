package service

import (
	"context"

	"github.com/billora/billora/internal/domain/customer"
	"github.com/billora/billora/internal/dto"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// CustomerService manages the owner's customer records
type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListCustomers(ctx context.Context, search string) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust := req.ToCustomer(ctx)
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Create(ctx, cust); err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(cust)
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	if err := s.CustomerRepo.Update(ctx, cust); err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.CustomerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, search string) (*dto.ListCustomersResponse, error) {
	customers, err := s.CustomerRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return &dto.CustomerResponse{Customer: c}
	})
	resp := types.NewListResponse(items)
	return &resp, nil
}
