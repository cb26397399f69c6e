package cart

import (
	"context"
	"testing"

	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/stretchr/testify/assert"
)

func TestSummaryBelowThreshold(t *testing.T) {
	m := newManager(t, kv.NewMemory())
	ctx := context.Background()
	m.AddToCart(ctx, product("1", 12.99))
	m.AddToCart(ctx, product("2", 8.99))

	s := m.Summary(DefaultPricing())
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, "21.98", s.Subtotal.StringFixed(2))
	assert.Equal(t, "5.99", s.Shipping.StringFixed(2))
	assert.Equal(t, "1.76", s.Tax.StringFixed(2))
	assert.Equal(t, "29.73", s.Total.StringFixed(2))
	assert.False(t, s.FreeShipping)
	assert.Equal(t, "28.02", s.FreeShippingRemaining.StringFixed(2))
}

func TestSummaryAtThresholdShipsFree(t *testing.T) {
	m := newManager(t, kv.NewMemory())
	if err := m.AddQuantity(context.Background(), product("1", 25), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	s := m.Summary(DefaultPricing())
	assert.True(t, s.FreeShipping)
	assert.True(t, s.Shipping.IsZero())
	assert.Equal(t, "4.00", s.Tax.StringFixed(2))
	assert.Equal(t, "54.00", s.Total.StringFixed(2))
	assert.True(t, s.FreeShippingRemaining.IsZero())
}

func TestSummaryEmptyCart(t *testing.T) {
	s := Summarize(nil, DefaultPricing())
	assert.Equal(t, 0, s.TotalItems)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Shipping.IsZero())
}

func TestSummaryCustomPricing(t *testing.T) {
	entries := []Entry{{Product: product("1", 10), Quantity: 3}}
	s := Summarize(entries, Pricing{TaxRate: 0.1, FreeShippingThreshold: 100, FlatShipping: 7})
	assert.Equal(t, "30.00", s.Subtotal.StringFixed(2))
	assert.Equal(t, "3.00", s.Tax.StringFixed(2))
	assert.Equal(t, "40.00", s.Total.StringFixed(2))
	assert.Equal(t, "70.00", s.FreeShippingRemaining.StringFixed(2))
}
