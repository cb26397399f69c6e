package catalog

import (
	"math"

	"github.com/shasthoai/store-backend/pkg/enums"
)

// Product is an immutable catalog record.
type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Category      string   `json:"category" yaml:"category"`
	Manufacturer  string   `json:"manufacturer" yaml:"manufacturer"`
	Dosage        string   `json:"dosage" yaml:"dosage"`
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Reviews       int      `json:"reviews" yaml:"reviews"`
	InStock       bool     `json:"inStock" yaml:"inStock"`
	Prescription  bool     `json:"prescription" yaml:"prescription"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// Discounted reports whether the product carries an original price above its price.
func (p Product) Discounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// DiscountPercent returns the whole-number discount, or 0 when not discounted.
func (p Product) DiscountPercent() int {
	if !p.Discounted() || *p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100))
}

// Clone returns a copy that shares no pointers with p.
func (p Product) Clone() Product {
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		p.OriginalPrice = &v
	}
	return p
}

// Category is a selectable filter option.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories lists the filter options, "all" first.
func Categories() []Category {
	known := enums.ProductCategories()
	out := make([]Category, 0, len(known))
	for _, c := range known {
		out = append(out, Category{Value: c.String(), Label: c.Label()})
	}
	return out
}
