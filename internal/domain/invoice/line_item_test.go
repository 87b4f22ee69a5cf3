package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	testCases := []struct {
		name               string
		items              []LineItem
		expectedSubtotal   string
		expectedTotalGST   string
		expectedGrandTotal string
		expectedLineTotals []string
	}{
		{
			name:               "empty_item_list_yields_zero_totals",
			items:              nil,
			expectedSubtotal:   "0",
			expectedTotalGST:   "0",
			expectedGrandTotal: "0",
		},
		{
			name: "single_item_with_gst",
			items: []LineItem{
				{Name: "Consulting", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), GSTPercent: decimal.NewFromInt(18)},
			},
			expectedSubtotal:   "3000",
			expectedTotalGST:   "540",
			expectedGrandTotal: "3540",
			expectedLineTotals: []string{"3540"},
		},
		{
			name: "multiple_items_with_mixed_gst_rates",
			items: []LineItem{
				{Name: "Consulting", Quantity: 2, UnitPrice: decimal.NewFromInt(1500), GSTPercent: decimal.NewFromInt(18)},
				{Name: "Paper reams", Quantity: 3, UnitPrice: decimal.NewFromInt(800), GSTPercent: decimal.NewFromInt(5)},
			},
			expectedSubtotal:   "5400",
			expectedTotalGST:   "660",
			expectedGrandTotal: "6060",
			expectedLineTotals: []string{"3540", "2520"},
		},
		{
			name: "zero_gst_item",
			items: []LineItem{
				{Name: "Exempt goods", Quantity: 4, UnitPrice: decimal.NewFromInt(250), GSTPercent: decimal.Zero},
			},
			expectedSubtotal:   "1000",
			expectedTotalGST:   "0",
			expectedGrandTotal: "1000",
			expectedLineTotals: []string{"1000"},
		},
		{
			name: "fractional_price_keeps_full_precision",
			items: []LineItem{
				{Name: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("10.10"), GSTPercent: decimal.NewFromInt(12)},
			},
			expectedSubtotal:   "30.3",
			expectedTotalGST:   "3.636",
			expectedGrandTotal: "33.936",
			expectedLineTotals: []string{"33.936"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, totals := ComputeTotals(tc.items)

			assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString(tc.expectedSubtotal)),
				"subtotal: got %s", totals.Subtotal)
			assert.True(t, totals.TotalGST.Equal(decimal.RequireFromString(tc.expectedTotalGST)),
				"total gst: got %s", totals.TotalGST)
			assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString(tc.expectedGrandTotal)),
				"grand total: got %s", totals.GrandTotal)

			require.Len(t, items, len(tc.items))
			for i, expected := range tc.expectedLineTotals {
				assert.True(t, items[i].LineTotal.Equal(decimal.RequireFromString(expected)),
					"line %d total: got %s", i, items[i].LineTotal)
			}
		})
	}
}

func TestComputeTotalsDoesNotTrustInputTotals(t *testing.T) {
	items := []LineItem{
		{Name: "Consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(100), GSTPercent: decimal.NewFromInt(18), LineTotal: decimal.NewFromInt(999999)},
	}

	out, totals := ComputeTotals(items)

	assert.True(t, out[0].LineTotal.Equal(decimal.NewFromInt(118)))
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(118)))
}

func TestLineItemValidate(t *testing.T) {
	testCases := []struct {
		name          string
		item          LineItem
		expectedError bool
	}{
		{
			name: "valid_item",
			item: LineItem{Name: "Consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(100), GSTPercent: decimal.NewFromInt(18)},
		},
		{
			name:          "missing_name",
			item:          LineItem{Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
			expectedError: true,
		},
		{
			name:          "zero_quantity",
			item:          LineItem{Name: "Consulting", Quantity: 0, UnitPrice: decimal.NewFromInt(100)},
			expectedError: true,
		},
		{
			name:          "negative_price",
			item:          LineItem{Name: "Consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(-5)},
			expectedError: true,
		},
		{
			name:          "gst_above_hundred",
			item:          LineItem{Name: "Consulting", Quantity: 1, UnitPrice: decimal.NewFromInt(100), GSTPercent: decimal.NewFromInt(101)},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
