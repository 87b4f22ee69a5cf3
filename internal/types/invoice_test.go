package types

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, InvoiceStatusDraft.Validate())
	assert.NoError(t, InvoiceStatusCancelled.Validate())
	assert.Error(t, InvoiceStatus("archived").Validate())
	assert.Error(t, InvoiceStatus("").Validate())
}

func TestInvoiceStatusCanTransitionTo(t *testing.T) {
	all := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}

	// same-state updates are always allowed
	for _, s := range all {
		assert.True(t, s.CanTransitionTo(s), "%s -> %s", s, s)
	}

	// cancelled is terminal
	for _, target := range all {
		if target == InvoiceStatusCancelled {
			continue
		}
		assert.False(t, InvoiceStatusCancelled.CanTransitionTo(target), "cancelled -> %s", target)
	}

	// every non-cancelled state can reach every other state
	for _, from := range all {
		if from == InvoiceStatusCancelled {
			continue
		}
		for _, target := range all {
			assert.True(t, from.CanTransitionTo(target), "%s -> %s", from, target)
		}
	}
}

func TestInvoiceFilterGetLimit(t *testing.T) {
	var nilFilter *InvoiceFilter
	assert.Equal(t, 0, nilFilter.GetLimit())
	assert.Equal(t, 0, (&InvoiceFilter{}).GetLimit())
	assert.Equal(t, 5, (&InvoiceFilter{Limit: lo.ToPtr(5)}).GetLimit())
}

func TestInvoiceFilterValidate(t *testing.T) {
	assert.NoError(t, (&InvoiceFilter{}).Validate())
	assert.NoError(t, (&InvoiceFilter{Status: lo.ToPtr(InvoiceStatusPaid), Limit: lo.ToPtr(10)}).Validate())
	assert.Error(t, (&InvoiceFilter{Limit: lo.ToPtr(0)}).Validate())
	assert.Error(t, (&InvoiceFilter{Status: lo.ToPtr(InvoiceStatus("bogus"))}).Validate())
}
