// Package store owns the per-session catalog view and cart.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/shasthoai/store-backend/internal/cart"
	"github.com/shasthoai/store-backend/internal/catalog"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
)

// Filters is a partial filter update; nil fields are left unchanged.
type Filters struct {
	Search   *string
	Category *string
	Sort     *string
}

// CartView is the cart with its aggregates.
type CartView struct {
	Entries    []cart.Entry
	TotalPrice float64
	TotalItems int
	// PersistError is the outcome of the latest write-through.
	PersistError error
}

// Persisted reports whether the latest write-through succeeded.
func (c CartView) Persisted() bool {
	return c.PersistError == nil
}

// Snapshot is the full state a storefront renders from.
type Snapshot struct {
	SearchTerm       string
	SelectedCategory string
	SortBy           string
	Medications      []catalog.Product
	Categories       []catalog.Category
	Cart             CartView
	IsLoading        bool
}

// Session is one shopper's view of the catalog plus their cart. All methods
// are safe for concurrent use.
type Session struct {
	mu           sync.Mutex
	id           string
	view         *catalog.View
	cart         *cart.Manager
	pricing      cart.Pricing
	relatedLimit int
	lastSeen     time.Time
}

// ID returns the session id; empty for the default session.
func (s *Session) ID() string {
	return s.id
}

// ListVisibleProducts returns the filtered, sorted products for this session.
func (s *Session) ListVisibleProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ListVisibleProducts()
}

// SetSearchTerm sets the session search filter.
func (s *Session) SetSearchTerm(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSearchTerm(text)
}

// SetSelectedCategory sets the session category filter.
func (s *Session) SetSelectedCategory(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSelectedCategory(key)
}

// SetSortBy sets the session sort key.
func (s *Session) SetSortBy(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SetSortBy(key)
}

// ApplyFilters sets the given filters together and returns the visible products.
func (s *Session) ApplyFilters(f Filters) []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.Search != nil {
		s.view.SetSearchTerm(*f.Search)
	}
	if f.Category != nil {
		s.view.SetSelectedCategory(*f.Category)
	}
	if f.Sort != nil {
		s.view.SetSortBy(*f.Sort)
	}
	return s.view.ListVisibleProducts()
}

// Product looks a product up in the full catalog.
func (s *Session) Product(id string) (catalog.Product, error) {
	p, ok := s.view.Catalog().FindByID(id)
	if !ok {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": id})
	}
	return p, nil
}

// Related lists products in the same category as id.
func (s *Session) Related(id string) ([]catalog.Product, error) {
	if _, err := s.Product(id); err != nil {
		return nil, err
	}
	return s.view.Catalog().Related(id, s.relatedLimit), nil
}

// AddToCart adds quantity units of a catalog product. Quantity 1 is a plain add.
func (s *Session) AddToCart(ctx context.Context, productID string, quantity int) (CartView, error) {
	p, err := s.Product(productID)
	if err != nil {
		return CartView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity == 1 {
		s.cart.AddToCart(ctx, p)
	} else if err := s.cart.AddQuantity(ctx, p, quantity); err != nil {
		return CartView{}, err
	}
	return s.cartView(), nil
}

// UpdateQuantity shifts the quantity of an entry; unknown ids are ignored.
func (s *Session) UpdateQuantity(ctx context.Context, productID string, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(ctx, productID, delta)
	return s.cartView()
}

// RemoveFromCart drops an entry; unknown ids are ignored.
func (s *Session) RemoveFromCart(ctx context.Context, productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(ctx, productID)
	return s.cartView()
}

// Cart returns the cart entries with totals.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView()
}

// TotalPrice sums price times quantity over the cart.
func (s *Session) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

// TotalItems sums quantities over the cart.
func (s *Session) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// Summary prices the cart with the session's pricing rules.
func (s *Session) Summary() cart.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary(s.pricing)
}

// Snapshot returns the full storefront state in one read.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		SearchTerm:       s.view.SearchTerm(),
		SelectedCategory: s.view.SelectedCategory(),
		SortBy:           s.view.SortBy(),
		Medications:      s.view.ListVisibleProducts(),
		Categories:       catalog.Categories(),
		Cart:             s.cartView(),
		IsLoading:        !s.view.Loaded(),
	}
}

func (s *Session) cartView() CartView {
	return CartView{
		Entries:      s.cart.Entries(),
		TotalPrice:   s.cart.TotalPrice(),
		TotalItems:   s.cart.TotalItems(),
		PersistError: s.cart.LastPersistError(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
