package service

import (
	"testing"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price string, quantity int) model.CartItem {
	return model.CartItem{
		Quantity: quantity,
		Product:  model.Product{Price: decimal.RequireFromString(price)},
	}
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []model.CartItem
		subtotal string
		shipping string
		total    string
	}{
		{
			name:     "Below threshold pays flat fee",
			items:    []model.CartItem{line("300.00", 2), line("150.00", 1)},
			subtotal: "750",
			shipping: "50",
			total:    "800",
		},
		{
			name:     "Exactly threshold still pays",
			items:    []model.CartItem{line("1000.00", 1)},
			subtotal: "1000",
			shipping: "50",
			total:    "1050",
		},
		{
			name:     "One cent over threshold ships free",
			items:    []model.CartItem{line("1000.01", 1)},
			subtotal: "1000.01",
			shipping: "0",
			total:    "1000.01",
		},
		{
			name:     "Fractional prices stay exact",
			items:    []model.CartItem{line("0.10", 3), line("0.20", 1)},
			subtotal: "0.5",
			shipping: "50",
			total:    "50.5",
		},
		{
			name:     "No items",
			items:    nil,
			subtotal: "0",
			shipping: "50",
			total:    "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateTotals(tt.items)

			assert.True(t, decimal.RequireFromString(tt.subtotal).Equal(totals.Subtotal), "subtotal %s", totals.Subtotal)
			assert.True(t, decimal.RequireFromString(tt.shipping).Equal(totals.ShippingFee), "shipping %s", totals.ShippingFee)
			assert.True(t, decimal.RequireFromString(tt.total).Equal(totals.Total), "total %s", totals.Total)
			assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.ShippingFee)))
		})
	}
}
