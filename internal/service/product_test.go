package service

import (
	"testing"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ProductServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ProductService
}

func TestProductService(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func (s *ProductServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewProductService(testServiceParams(&s.BaseServiceTestSuite))
}

func (s *ProductServiceSuite) TestCreateProduct() {
	resp, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:       "Consulting hour",
		Price:      decimal.RequireFromString("1500.50"),
		GSTPercent: decimal.NewFromInt(18),
		HSNCode:    lo.ToPtr("998313"),
	})
	s.NoError(err)
	s.Equal("Consulting hour", resp.Name)
	s.True(resp.Price.Equal(decimal.RequireFromString("1500.50")))
	s.True(resp.GSTPercent.Equal(decimal.NewFromInt(18)))
	s.Equal(testutil.TestUserID, resp.OwnerID)
}

func (s *ProductServiceSuite) TestCreateProductValidation() {
	_, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Price: decimal.NewFromInt(100),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProductServiceSuite) TestUpdateProductPartial() {
	created, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:       "Consulting hour",
		Price:      decimal.NewFromInt(1500),
		GSTPercent: decimal.NewFromInt(18),
	})
	s.NoError(err)

	updated, err := s.service.UpdateProduct(s.GetContext(), created.ID, dto.UpdateProductRequest{
		Price: lo.ToPtr(decimal.NewFromInt(1750)),
	})
	s.NoError(err)

	s.Equal("Consulting hour", updated.Name)
	s.True(updated.Price.Equal(decimal.NewFromInt(1750)))
	s.True(updated.GSTPercent.Equal(decimal.NewFromInt(18)))
}

func (s *ProductServiceSuite) TestProductsAreOwnerScoped() {
	created, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:  "Consulting hour",
		Price: decimal.NewFromInt(1500),
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	_, err = s.service.GetProduct(otherCtx, created.ID)
	s.True(ierr.IsNotFound(err))

	err = s.service.DeleteProduct(otherCtx, created.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *ProductServiceSuite) TestListProductsWithSearch() {
	for _, name := range []string{"Paper A4", "Paper A3", "Stapler"} {
		_, err := s.service.CreateProduct(s.GetContext(), dto.CreateProductRequest{
			Name:  name,
			Price: decimal.NewFromInt(100),
		})
		s.NoError(err)
	}

	all, err := s.service.ListProducts(s.GetContext(), "")
	s.NoError(err)
	s.Equal(3, all.Total)

	matched, err := s.service.ListProducts(s.GetContext(), "paper")
	s.NoError(err)
	s.Equal(2, matched.Total)
}
