package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source supplies the catalog at startup.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
}

const placeholderImage = "/placeholder.svg?height=200&width=200"

// StaticSource serves the built-in sample medications.
type StaticSource struct{}

func (StaticSource) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SampleProducts(), nil
}

// SampleProducts returns a fresh copy of the built-in catalog.
func SampleProducts() []Product {
	return []Product{
		{
			ID:            "1",
			Name:          "Ibuprofen 400mg",
			Description:   "Anti-inflammatory pain reliever for bone and joint pain",
			Category:      "pain-relief",
			Manufacturer:  "PharmaCorp",
			Dosage:        "400mg tablets",
			Price:         12.99,
			OriginalPrice: price(15.99),
			Rating:        4.5,
			Reviews:       128,
			InStock:       true,
			Image:         placeholderImage,
		},
		{
			ID:           "2",
			Name:         "Acetaminophen 500mg",
			Description:  "Effective pain relief and fever reducer",
			Category:     "pain-relief",
			Manufacturer: "MediCare",
			Dosage:       "500mg tablets",
			Price:        8.99,
			Rating:       4.3,
			Reviews:      95,
			InStock:      true,
			Image:        placeholderImage,
		},
		{
			ID:           "3",
			Name:         "Calcium Carbonate 600mg",
			Description:  "Essential calcium supplement for bone health",
			Category:     "supplements",
			Manufacturer: "HealthPlus",
			Dosage:       "600mg tablets",
			Price:        16.99,
			Rating:       4.7,
			Reviews:      203,
			InStock:      true,
			Image:        placeholderImage,
		},
		{
			ID:           "4",
			Name:         "Diclofenac Gel 1%",
			Description:  "Topical anti-inflammatory gel for localized pain",
			Category:     "topical",
			Manufacturer: "TopicalMed",
			Dosage:       "50g tube",
			Price:        22.99,
			Rating:       4.4,
			Reviews:      67,
			InStock:      true,
			Prescription: true,
			Image:        placeholderImage,
		},
		{
			ID:           "5",
			Name:         "Vitamin D3 2000 IU",
			Description:  "Supports bone health and calcium absorption",
			Category:     "supplements",
			Manufacturer: "VitaHealth",
			Dosage:       "2000 IU softgels",
			Price:        14.99,
			Rating:       4.6,
			Reviews:      156,
			InStock:      true,
			Image:        placeholderImage,
		},
		{
			ID:           "6",
			Name:         "Tramadol 50mg",
			Description:  "Prescription pain medication for moderate to severe pain",
			Category:     "prescription",
			Manufacturer: "PharmaRx",
			Dosage:       "50mg tablets",
			Price:        45.99,
			Rating:       4.2,
			Reviews:      89,
			InStock:      true,
			Prescription: true,
			Image:        placeholderImage,
		},
	}
}

func price(v float64) *float64 {
	return &v
}

// FileSource reads the catalog from a YAML or JSON fixture.
// The document is either a list of products or a mapping with a "products" list.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Path) == "" {
		return nil, fmt.Errorf("catalog file path required")
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	products, err := ParseProducts(raw)
	if err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.Path, err)
	}
	return products, nil
}

// ParseProducts decodes a catalog document and checks product ids.
func ParseProducts(raw []byte) ([]Product, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}
	root := doc.Content[0]

	var products []Product
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&products); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var wrapped struct {
			Products []Product `yaml:"products"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, err
		}
		products = wrapped.Products
	default:
		return nil, fmt.Errorf("catalog document must be a list or a mapping")
	}

	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("product %d: id required", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
