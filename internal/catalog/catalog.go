// Package catalog holds the medication catalog and the per-session filter
// and sort view over it.
package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shasthoai/store-backend/pkg/enums"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultRelatedLimit caps Related when the caller passes a non-positive limit.
const DefaultRelatedLimit = 3

// Catalog is the loaded, read-only product list. It is safe for concurrent use.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from the given products, in order.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
		if _, exists := c.byID[p.ID]; !exists {
			c.byID[p.ID] = i
		}
	}
	return c
}

// Load reads the catalog from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	products, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(products), nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	return cloneAll(c.products)
}

// FindByID looks a product up in the unfiltered catalog.
func (c *Catalog) FindByID(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx].Clone(), true
}

// Related returns up to limit products sharing id's category, excluding id itself.
func (c *Catalog) Related(id string, limit int) []Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	base, ok := c.FindByID(id)
	if !ok {
		return []Product{}
	}
	out := make([]Product, 0, limit)
	for _, p := range c.products {
		if len(out) == limit {
			break
		}
		if p.Category == base.Category && p.ID != base.ID {
			out = append(out, p.Clone())
		}
	}
	return out
}

// View is the filter and sort state over a catalog. It is not safe for
// concurrent use; callers serialize access.
type View struct {
	catalog    *Catalog
	searchTerm string
	category   string
	sortBy     string
}

// NewView starts a view with no search, every category and name ordering.
// A nil catalog yields a view that reports not loaded.
func NewView(c *Catalog) *View {
	return &View{
		catalog:  c,
		category: enums.ProductCategoryAll.String(),
		sortBy:   enums.SortByName.String(),
	}
}

// Loaded reports whether the view has a catalog behind it.
func (v *View) Loaded() bool {
	return v.catalog != nil
}

// Catalog returns the underlying catalog.
func (v *View) Catalog() *Catalog {
	return v.catalog
}

// SetSearchTerm sets the case-insensitive name or description filter.
func (v *View) SetSearchTerm(text string) { v.searchTerm = text }

// SetSelectedCategory accepts any key; unknown keys match no product.
func (v *View) SetSelectedCategory(key string) { v.category = key }

// SetSortBy accepts any key; unknown keys order by name.
func (v *View) SetSortBy(key string) { v.sortBy = key }

// SearchTerm returns the current search filter.
func (v *View) SearchTerm() string { return v.searchTerm }

// SelectedCategory returns the current category key.
func (v *View) SelectedCategory() string { return v.category }

// SortBy returns the current sort key as set.
func (v *View) SortBy() string { return v.sortBy }

// ListVisibleProducts returns the filtered, sorted products. The result is nil
// before the catalog is loaded and a non-nil empty slice when nothing matches.
func (v *View) ListVisibleProducts() []Product {
	if v.catalog == nil {
		return nil
	}

	term := strings.ToLower(v.searchTerm)
	all := v.category == enums.ProductCategoryAll.String()

	out := make([]Product, 0, len(v.catalog.products))
	for _, p := range v.catalog.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if !all && p.Category != v.category {
			continue
		}
		out = append(out, p.Clone())
	}

	slices.SortStableFunc(out, comparer(enums.SortKey(v.sortBy)))
	return out
}

func comparer(key enums.SortKey) func(a, b Product) int {
	switch key {
	case enums.SortByPriceLow:
		return func(a, b Product) int { return cmp.Compare(a.Price, b.Price) }
	case enums.SortByPriceHigh:
		return func(a, b Product) int { return cmp.Compare(b.Price, a.Price) }
	case enums.SortByRating:
		return func(a, b Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		// collate.Collator is not safe for concurrent use.
		col := collate.New(language.English)
		return func(a, b Product) int { return col.CompareString(a.Name, b.Name) }
	}
}

func cloneAll(in []Product) []Product {
	out := make([]Product, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
