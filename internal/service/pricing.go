package service

import (
	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Shipping policy. Orders whose subtotal is strictly above the threshold ship free.
var (
	FreeShippingThreshold = decimal.NewFromInt(1000)
	FlatShippingFee       = decimal.NewFromInt(50)
)

// ShippingFee returns the fee charged for a subtotal.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// CalculateTotals prices cart lines at their products' current prices.
func CalculateTotals(items []model.CartItem) model.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	fee := ShippingFee(subtotal)
	return model.Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal.Add(fee),
	}
}
