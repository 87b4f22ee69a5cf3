package service

import (
	"testing"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCustomerService(testServiceParams(&s.BaseServiceTestSuite))
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	resp, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: lo.ToPtr("billing@acme.example"),
		GSTIN: lo.ToPtr("27AAPFU0939F1ZV"),
	})
	s.NoError(err)
	s.Equal("Acme Corp", resp.Name)
	s.Equal(testutil.TestUserID, resp.OwnerID)
	s.NotEmpty(resp.ID)
}

func (s *CustomerServiceSuite) TestCreateCustomerValidation() {
	_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "",
		Email: lo.ToPtr("billing@acme.example"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: lo.ToPtr("not-an-email"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestUpdateCustomerPartial() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Phone: lo.ToPtr("9876543210"),
	})
	s.NoError(err)

	updated, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Email: lo.ToPtr("accounts@acme.example"),
	})
	s.NoError(err)

	// untouched fields survive a partial update
	s.Equal("Acme Corp", updated.Name)
	s.Equal("9876543210", *updated.Phone)
	s.Equal("accounts@acme.example", *updated.Email)
}

func (s *CustomerServiceSuite) TestCustomersAreOwnerScoped() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name: "Acme Corp",
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextForUser("user_other_owner")

	_, err = s.service.GetCustomer(otherCtx, created.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.UpdateCustomer(otherCtx, created.ID, dto.UpdateCustomerRequest{
		Name: lo.ToPtr("Hijacked"),
	})
	s.True(ierr.IsNotFound(err))

	err = s.service.DeleteCustomer(otherCtx, created.ID)
	s.True(ierr.IsNotFound(err))

	// the record is untouched for its owner
	got, err := s.service.GetCustomer(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal("Acme Corp", got.Name)
}

func (s *CustomerServiceSuite) TestListCustomersWithSearch() {
	for _, name := range []string{"Acme Corp", "Acme Subsidiary", "Globex"} {
		_, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{Name: name})
		s.NoError(err)
	}

	all, err := s.service.ListCustomers(s.GetContext(), "")
	s.NoError(err)
	s.Equal(3, all.Total)

	matched, err := s.service.ListCustomers(s.GetContext(), "acme")
	s.NoError(err)
	s.Equal(2, matched.Total)

	none, err := s.service.ListCustomers(s.GetContext(), "initech")
	s.NoError(err)
	s.Equal(0, none.Total)
}

func (s *CustomerServiceSuite) TestDeleteCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name: "Acme Corp",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	_, err = s.service.GetCustomer(s.GetContext(), created.ID)
	s.True(ierr.IsNotFound(err))
}
