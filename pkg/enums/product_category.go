package enums

import "fmt"

// ProductCategory represents the catalog categories a medication can belong to.
type ProductCategory string

const (
	// ProductCategoryAll is the filter sentinel matching every category.
	ProductCategoryAll          ProductCategory = "all"
	ProductCategoryPainRelief   ProductCategory = "pain-relief"
	ProductCategorySupplements  ProductCategory = "supplements"
	ProductCategoryTopical      ProductCategory = "topical"
	ProductCategoryPrescription ProductCategory = "prescription"
)

var validProductCategories = []ProductCategory{
	ProductCategoryAll,
	ProductCategoryPainRelief,
	ProductCategorySupplements,
	ProductCategoryTopical,
	ProductCategoryPrescription,
}

var productCategoryLabels = map[ProductCategory]string{
	ProductCategoryAll:          "All Categories",
	ProductCategoryPainRelief:   "Pain Relief",
	ProductCategorySupplements:  "Supplements",
	ProductCategoryTopical:      "Topical",
	ProductCategoryPrescription: "Prescription",
}

// ProductCategories returns the known categories, sentinel first.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// Label returns the display label, or the raw value for unknown categories.
func (c ProductCategory) Label() string {
	if label, ok := productCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
