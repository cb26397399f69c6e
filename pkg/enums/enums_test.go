package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	for _, c := range ProductCategories() {
		got, err := ParseProductCategory(c.String())
		if err != nil || got != c {
			t.Fatalf("round trip failed for %q: %v", c, err)
		}
		if c.Label() == "" {
			t.Fatalf("missing label for %q", c)
		}
	}
	if _, err := ParseProductCategory("vitamins"); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if ProductCategory("vitamins").Label() != "vitamins" {
		t.Fatal("unknown category label should echo the raw value")
	}
	if ProductCategories()[0] != ProductCategoryAll {
		t.Fatal("sentinel should come first")
	}
}

func TestParseSortKey(t *testing.T) {
	for _, raw := range []string{"name", "price-low", "price-high", "rating"} {
		key, err := ParseSortKey(raw)
		if err != nil || !key.IsValid() {
			t.Fatalf("expected %q to parse: %v", raw, err)
		}
	}
	if _, err := ParseSortKey("newest"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
	if SortKey("newest").IsValid() {
		t.Fatal("unknown sort key must not be valid")
	}
}

func TestParseKVBackend(t *testing.T) {
	if b, err := ParseKVBackend("redis"); err != nil || b != KVBackendRedis {
		t.Fatalf("unexpected parse result %q %v", b, err)
	}
	if _, err := ParseKVBackend("file"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
