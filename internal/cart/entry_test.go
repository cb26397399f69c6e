package cart

import (
	"strings"
	"testing"

	"github.com/shasthoai/store-backend/internal/catalog"
)

func TestEncodeEmptyCartIsArray(t *testing.T) {
	raw, err := Encode(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestEncodeFlattensProductFields(t *testing.T) {
	orig := 15.99
	raw, err := Encode([]Entry{{
		Product:  catalog.Product{ID: "1", Name: "Ibuprofen 400mg", Price: 12.99, OriginalPrice: &orig, InStock: true},
		Quantity: 2,
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, want := range []string{`"id":"1"`, `"originalPrice":15.99`, `"inStock":true`, `"quantity":2`} {
		if !strings.Contains(raw, want) {
			t.Fatalf("expected %s in %s", want, raw)
		}
	}
	if strings.Contains(raw, `"Product"`) {
		t.Fatalf("product should be flattened: %s", raw)
	}
}

func TestDecodeAcceptsOriginalShape(t *testing.T) {
	entries, err := Decode(`  [{"id":"2","name":"Acetaminophen 500mg","price":8.99,"quantity":1}]`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].OriginalPrice != nil || entries[0].Price != 8.99 {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	empty, err := Decode("[]")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected non-nil empty slice, got %#v (%v)", empty, err)
	}
}
