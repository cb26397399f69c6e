package controllers

import (
	"github.com/shasthoai/store-backend/internal/cart"
	"github.com/shasthoai/store-backend/internal/catalog"
	"github.com/shasthoai/store-backend/internal/store"
)

type productResponse struct {
	catalog.Product
	DiscountPercent int `json:"discountPercent,omitempty"`
}

func newProductResponse(p catalog.Product) productResponse {
	return productResponse{Product: p, DiscountPercent: p.DiscountPercent()}
}

// newProductList keeps nil (catalog not loaded) distinct from empty.
func newProductList(products []catalog.Product) []productResponse {
	if products == nil {
		return nil
	}
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = newProductResponse(p)
	}
	return out
}

type cartEntryResponse struct {
	cart.Entry
	Subtotal float64 `json:"subtotal"`
}

type cartResponse struct {
	Items      []cartEntryResponse `json:"items"`
	TotalPrice float64             `json:"totalPrice"`
	TotalItems int                 `json:"totalItems"`
	Persisted  bool                `json:"persisted"`
}

func newCartResponse(v store.CartView) cartResponse {
	items := make([]cartEntryResponse, len(v.Entries))
	for i, e := range v.Entries {
		items[i] = cartEntryResponse{Entry: e, Subtotal: e.Subtotal()}
	}
	return cartResponse{
		Items:      items,
		TotalPrice: v.TotalPrice,
		TotalItems: v.TotalItems,
		Persisted:  v.Persisted(),
	}
}

type summaryResponse struct {
	TotalItems            int    `json:"totalItems"`
	Subtotal              string `json:"subtotal"`
	Shipping              string `json:"shipping"`
	Tax                   string `json:"tax"`
	Total                 string `json:"total"`
	FreeShipping          bool   `json:"freeShipping"`
	FreeShippingRemaining string `json:"freeShippingRemaining"`
}

func newSummaryResponse(s cart.Summary) summaryResponse {
	return summaryResponse{
		TotalItems:            s.TotalItems,
		Subtotal:              s.Subtotal.StringFixed(2),
		Shipping:              s.Shipping.StringFixed(2),
		Tax:                   s.Tax.StringFixed(2),
		Total:                 s.Total.StringFixed(2),
		FreeShipping:          s.FreeShipping,
		FreeShippingRemaining: s.FreeShippingRemaining.StringFixed(2),
	}
}

type filtersResponse struct {
	SearchTerm       string            `json:"searchTerm"`
	SelectedCategory string            `json:"selectedCategory"`
	SortBy           string            `json:"sortBy"`
	Medications      []productResponse `json:"medications"`
}

type snapshotResponse struct {
	filtersResponse
	Categories []catalog.Category `json:"categories"`
	Cart       cartResponse       `json:"cart"`
	TotalPrice float64            `json:"totalPrice"`
	TotalItems int                `json:"totalItems"`
	IsLoading  bool               `json:"isLoading"`
}

func newSnapshotResponse(s store.Snapshot) snapshotResponse {
	return snapshotResponse{
		filtersResponse: filtersResponse{
			SearchTerm:       s.SearchTerm,
			SelectedCategory: s.SelectedCategory,
			SortBy:           s.SortBy,
			Medications:      newProductList(s.Medications),
		},
		Categories: s.Categories,
		Cart:       newCartResponse(s.Cart),
		TotalPrice: s.Cart.TotalPrice,
		TotalItems: s.Cart.TotalItems,
		IsLoading:  s.IsLoading,
	}
}
