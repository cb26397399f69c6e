package cart

import "github.com/shopspring/decimal"

// Pricing holds the order-summary rules.
type Pricing struct {
	TaxRate               float64
	FreeShippingThreshold float64
	FlatShipping          float64
}

// DefaultPricing is 8% tax with free shipping from 50.00, else 5.99.
func DefaultPricing() Pricing {
	return Pricing{TaxRate: 0.08, FreeShippingThreshold: 50, FlatShipping: 5.99}
}

// Summary is the checkout breakdown of a cart, rounded to cents.
type Summary struct {
	TotalItems            int
	Subtotal              decimal.Decimal
	Shipping              decimal.Decimal
	Tax                   decimal.Decimal
	Total                 decimal.Decimal
	FreeShipping          bool
	FreeShippingRemaining decimal.Decimal
}

// Summary prices the current cart. An empty cart ships for free.
func (m *Manager) Summary(p Pricing) Summary {
	return Summarize(m.entries, p)
}

// Summarize prices the given entries.
func Summarize(entries []Entry, p Pricing) Summary {
	subtotal := decimal.Zero
	items := 0
	for _, e := range entries {
		subtotal = subtotal.Add(decimal.NewFromFloat(e.Price).Mul(decimal.NewFromInt(int64(e.Quantity))))
		items = addQuantity(items, e.Quantity)
	}

	threshold := decimal.NewFromFloat(p.FreeShippingThreshold)
	free := items == 0 || subtotal.GreaterThanOrEqual(threshold)

	shipping := decimal.Zero
	if !free {
		shipping = decimal.NewFromFloat(p.FlatShipping)
	}
	tax := subtotal.Mul(decimal.NewFromFloat(p.TaxRate)).Round(2)

	remaining := decimal.Zero
	if !free {
		remaining = threshold.Sub(subtotal)
	}

	return Summary{
		TotalItems:            items,
		Subtotal:              subtotal.Round(2),
		Shipping:              shipping.Round(2),
		Tax:                   tax,
		Total:                 subtotal.Add(shipping).Add(tax).Round(2),
		FreeShipping:          free,
		FreeShippingRemaining: remaining.Round(2),
	}
}
