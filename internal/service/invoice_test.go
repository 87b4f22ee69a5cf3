package service

import (
	"strings"
	"testing"
	"time"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/testutil"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       InvoiceService
	sellerService SellerService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := testServiceParams(&s.BaseServiceTestSuite)
	s.service = NewInvoiceService(params)
	s.sellerService = NewSellerService(params)
}

func consultingItem() dto.LineItemRequest {
	return dto.LineItemRequest{
		Name:       "Consulting",
		Quantity:   2,
		UnitPrice:  decimal.NewFromInt(1500),
		GSTPercent: decimal.NewFromInt(18),
	}
}

func paperItem() dto.LineItemRequest {
	return dto.LineItemRequest{
		Name:       "Paper reams",
		Quantity:   3,
		UnitPrice:  decimal.NewFromInt(800),
		GSTPercent: decimal.NewFromInt(5),
	}
}

func (s *InvoiceServiceSuite) assertDecimalEqual(expected string, actual decimal.Decimal) {
	s.True(actual.Equal(decimal.RequireFromString(expected)), "expected %s, got %s", expected, actual)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceComputesTotals() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)
	s.NotNil(resp)

	s.assertDecimalEqual("3000", resp.Subtotal)
	s.assertDecimalEqual("540", resp.TotalGST)
	s.assertDecimalEqual("3540", resp.GrandTotal)
	s.assertDecimalEqual("3540", resp.Items[0].LineTotal)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.Equal(1, resp.Version)
	s.True(strings.HasPrefix(resp.ID, "inv_"))
	s.Equal(testutil.TestUserID, resp.OwnerID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceWithEmptyItemsIsValidDraft() {
	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-002",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	s.assertDecimalEqual("0", resp.Subtotal)
	s.assertDecimalEqual("0", resp.TotalGST)
	s.assertDecimalEqual("0", resp.GrandTotal)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsNonDraftWithoutItems() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-003",
		CustomerName:  "Acme Corp",
		Status:        lo.ToPtr(types.InvoiceStatusSent),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsDuplicateNumber() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-004",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-004",
		CustomerName:  "Other Corp",
	})
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *InvoiceServiceSuite) TestSameNumberAllowedAcrossOwners() {
	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-005",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	_, err = s.service.CreateInvoice(otherCtx, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-005",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsDueDateBeforeInvoiceDate() {
	invoiceDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	dueDate := invoiceDate.AddDate(0, 0, -1)

	_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-006",
		CustomerName:  "Acme Corp",
		InvoiceDate:   &invoiceDate,
		DueDate:       &dueDate,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSnapshotsDefaultSeller() {
	_, err := s.sellerService.CreateSeller(s.GetContext(), dto.CreateSellerRequest{
		BusinessName: "Sharma Traders",
		GSTIN:        lo.ToPtr("22AAAAA0000A1Z5"),
	})
	s.NoError(err)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-007",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)
	s.NotNil(resp.SellerDetails)
	s.Equal("Sharma Traders", resp.SellerDetails.BusinessName)
	s.Equal("22AAAAA0000A1Z5", *resp.SellerDetails.GSTIN)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceKeepsExplicitSellerBlock() {
	_, err := s.sellerService.CreateSeller(s.GetContext(), dto.CreateSellerRequest{
		BusinessName: "Sharma Traders",
	})
	s.NoError(err)

	resp, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-008",
		CustomerName:  "Acme Corp",
		SellerDetails: &dto.SellerSnapshotRequest{BusinessName: "One Off Ventures"},
	})
	s.NoError(err)
	s.Equal("One Off Ventures", resp.SellerDetails.BusinessName)
}

func (s *InvoiceServiceSuite) TestSellerEditDoesNotChangeSnapshot() {
	created, err := s.sellerService.CreateSeller(s.GetContext(), dto.CreateSellerRequest{
		BusinessName: "Sharma Traders",
	})
	s.NoError(err)

	inv, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-009",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	_, err = s.sellerService.UpdateSeller(s.GetContext(), created.ID, dto.UpdateSellerRequest{
		BusinessName: lo.ToPtr("Renamed Traders"),
	})
	s.NoError(err)

	got, err := s.service.GetInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal("Sharma Traders", got.SellerDetails.BusinessName)
}

func (s *InvoiceServiceSuite) TestGetInvoiceIsOwnerScoped() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-010",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	_, err = s.service.GetInvoice(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceRecomputesTotals() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-011",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Items: lo.ToPtr([]dto.LineItemRequest{consultingItem(), paperItem()}),
	})
	s.NoError(err)

	s.assertDecimalEqual("5400", updated.Subtotal)
	s.assertDecimalEqual("660", updated.TotalGST)
	s.assertDecimalEqual("6060", updated.GrandTotal)
	s.Equal(2, updated.Version)
}

func (s *InvoiceServiceSuite) TestStatusOnlyUpdatePreservesTotals() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-012",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusSent),
	})
	s.NoError(err)

	s.Equal(types.InvoiceStatusSent, updated.Status)
	s.assertDecimalEqual("3000", updated.Subtotal)
	s.assertDecimalEqual("540", updated.TotalGST)
	s.assertDecimalEqual("3540", updated.GrandTotal)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceRejectsStaleVersion() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-013",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	// first edit bumps the version to 2
	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("net 30"),
	})
	s.NoError(err)

	// a second edit still citing version 1 lost the race
	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes:   lo.ToPtr("net 15"),
		Version: lo.ToPtr(1),
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceWithoutVersionUsesLatest() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-014",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("net 30"),
	})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("net 15"),
	})
	s.NoError(err)
	s.Equal(3, updated.Version)
}

func (s *InvoiceServiceSuite) TestCancelledInvoiceIsTerminal() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-015",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusCancelled),
	})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusSent),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCancelledInvoiceAcceptsSameStatusUpdate() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-016",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusCancelled),
	})
	s.NoError(err)

	updated, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusCancelled),
		Notes:  lo.ToPtr("cancelled on customer request"),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled, updated.Status)
}

func (s *InvoiceServiceSuite) TestUpdateRejectsLeavingDraftWithoutItems() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-017",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Status: lo.ToPtr(types.InvoiceStatusSent),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, status := range []types.InvoiceStatus{
		types.InvoiceStatusDraft,
		types.InvoiceStatusSent,
		types.InvoiceStatusPaid,
	} {
		date := base.AddDate(0, 0, i)
		_, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
			InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE_NUMBER),
			CustomerName:  "Acme Corp",
			Items:         []dto.LineItemRequest{consultingItem()},
			InvoiceDate:   &date,
			Status:        lo.ToPtr(status),
		})
		s.NoError(err)
	}

	all, err := s.service.ListInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(3, all.Total)
	// newest invoice date first
	s.Equal(types.InvoiceStatusPaid, all.Items[0].Status)
	s.Equal(types.InvoiceStatusDraft, all.Items[2].Status)

	paid, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		Status: lo.ToPtr(types.InvoiceStatusPaid),
	})
	s.NoError(err)
	s.Equal(1, paid.Total)

	limited, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		Limit: lo.ToPtr(2),
	})
	s.NoError(err)
	s.Equal(2, limited.Total)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	theirs, err := s.service.ListInvoices(otherCtx, nil)
	s.NoError(err)
	s.Equal(0, theirs.Total)
}

func (s *InvoiceServiceSuite) TestDeleteInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-018",
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	err = s.service.DeleteInvoice(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	s.NoError(s.service.DeleteInvoice(s.GetContext(), created.ID))

	_, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestSuggestInvoiceNumber() {
	resp, err := s.service.SuggestInvoiceNumber(s.GetContext())
	s.NoError(err)
	s.True(strings.HasPrefix(resp.InvoiceNumber, types.SHORT_ID_PREFIX_INVOICE_NUMBER))
	s.Greater(len(resp.InvoiceNumber), len(types.SHORT_ID_PREFIX_INVOICE_NUMBER))

	// the suggestion is not reserved, so creating with it must work
	_, err = s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: resp.InvoiceNumber,
		CustomerName:  "Acme Corp",
	})
	s.NoError(err)
}

func (s *InvoiceServiceSuite) TestGetInvoicePDF() {
	created, err := s.service.CreateInvoice(s.GetContext(), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-019",
		CustomerName:  "Acme Corp",
		Items:         []dto.LineItemRequest{consultingItem()},
	})
	s.NoError(err)

	data, err := s.service.GetInvoicePDF(s.GetContext(), created.ID)
	s.NoError(err)
	s.Contains(string(data), "INV-019")

	otherCtx := testutil.SetupContextForUser("user_other_owner")
	_, err = s.service.GetInvoicePDF(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
