package types

import (
	ierr "github.com/billora/billora/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft is the initial state; items may still be empty
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates the invoice has been issued to the customer
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPaid indicates payment has been received in full
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusOverdue indicates the due date passed without payment
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	// InvoiceStatusCancelled is terminal; no further transitions are allowed
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// invoiceStatusTransitions is the allowed-next-states map. The original
// system accepted any transition; the one restriction added here is that
// cancelled is terminal, so a cancelled invoice cannot be revived by a
// status patch. Every other state remains manually correctable.
var invoiceStatusTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:     {InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusSent:      {InvoiceStatusDraft, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusPaid:      {InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:   {InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusCancelled: {},
}

// CanTransitionTo reports whether the status change is allowed. Same-state
// updates are always allowed.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s == target {
		return true
	}
	return lo.Contains(invoiceStatusTransitions[s], target)
}

// InvoiceFilter captures the supported list query parameters
type InvoiceFilter struct {
	Status *InvoiceStatus `json:"status,omitempty" form:"status"`
	Limit  *int           `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
}

func (f *InvoiceFilter) Validate() error {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return err
		}
	}
	if f.Limit != nil && *f.Limit < 1 {
		return ierr.NewError("invalid limit").
			WithHint("Limit must be a positive integer").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetLimit returns the requested limit or 0 for unlimited
func (f *InvoiceFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return 0
	}
	return *f.Limit
}
