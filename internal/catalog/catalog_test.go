package catalog

import (
	"context"
	"reflect"
	"testing"
)

func sampleView(t *testing.T) *View {
	t.Helper()
	c, err := Load(context.Background(), StaticSource{})
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return NewView(c)
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestListVisibleProductsDefaultsToNameOrder(t *testing.T) {
	v := sampleView(t)
	got := ids(v.ListVisibleProducts())
	want := []string{"2", "3", "4", "1", "6", "5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSearchMatchesNameOrDescriptionCaseInsensitive(t *testing.T) {
	v := sampleView(t)

	v.SetSearchTerm("vitamin")
	if got := ids(v.ListVisibleProducts()); !reflect.DeepEqual(got, []string{"5"}) {
		t.Fatalf("expected only vitamin d3, got %v", got)
	}

	v.SetSearchTerm("BONE")
	got := ids(v.ListVisibleProducts())
	want := []string{"3", "1", "5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected description matches %v, got %v", want, got)
	}
}

func TestCategoryFilter(t *testing.T) {
	v := sampleView(t)
	v.SetSelectedCategory("supplements")
	if got := ids(v.ListVisibleProducts()); !reflect.DeepEqual(got, []string{"3", "5"}) {
		t.Fatalf("unexpected supplements: %v", got)
	}

	v.SetSelectedCategory("antibiotics")
	got := v.ListVisibleProducts()
	if got == nil || len(got) != 0 {
		t.Fatalf("unknown category should yield a non-nil empty list, got %#v", got)
	}
}

func TestSortKeys(t *testing.T) {
	cases := []struct {
		sort string
		want []string
	}{
		{sort: "price-low", want: []string{"2", "1", "5", "3", "4", "6"}},
		{sort: "price-high", want: []string{"6", "4", "3", "5", "1", "2"}},
		{sort: "rating", want: []string{"3", "5", "1", "4", "2", "6"}},
		{sort: "popularity", want: []string{"2", "3", "4", "1", "6", "5"}},
	}
	for _, tc := range cases {
		t.Run(tc.sort, func(t *testing.T) {
			v := sampleView(t)
			v.SetSortBy(tc.sort)
			if got := ids(v.ListVisibleProducts()); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if v.SortBy() != tc.sort {
				t.Fatalf("setter should keep the raw key, got %q", v.SortBy())
			}
		})
	}
}

func TestPriceLowIsNonDecreasing(t *testing.T) {
	v := sampleView(t)
	v.SetSortBy("price-low")
	products := v.ListVisibleProducts()
	for i := 1; i < len(products); i++ {
		if products[i].Price < products[i-1].Price {
			t.Fatalf("price decreased at %d: %v then %v", i, products[i-1].Price, products[i].Price)
		}
	}
}

func TestSortIsStableForTies(t *testing.T) {
	c := New([]Product{
		{ID: "a", Name: "Zinc", Price: 5, Rating: 4},
		{ID: "b", Name: "Iron", Price: 5, Rating: 4},
		{ID: "c", Name: "Folate", Price: 3, Rating: 4},
		{ID: "d", Name: "Biotin", Price: 5, Rating: 4},
	})
	v := NewView(c)

	v.SetSortBy("price-low")
	if got := ids(v.ListVisibleProducts()); !reflect.DeepEqual(got, []string{"c", "a", "b", "d"}) {
		t.Fatalf("ties should keep catalog order, got %v", got)
	}
	v.SetSortBy("rating")
	if got := ids(v.ListVisibleProducts()); !reflect.DeepEqual(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("equal ratings should keep catalog order, got %v", got)
	}
}

func TestNameOrderIsLocaleAware(t *testing.T) {
	v := NewView(New([]Product{
		{ID: "1", Name: "Banana"},
		{ID: "2", Name: "apple"},
		{ID: "3", Name: "Échinacea"},
		{ID: "4", Name: "Fish Oil"},
	}))
	got := ids(v.ListVisibleProducts())
	want := []string{"2", "1", "3", "4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected collated order %v, got %v", want, got)
	}
}

func TestListIsDeterministic(t *testing.T) {
	v := sampleView(t)
	v.SetSearchTerm("pain")
	v.SetSortBy("rating")
	first := v.ListVisibleProducts()
	second := v.ListVisibleProducts()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated calls differ: %v vs %v", ids(first), ids(second))
	}
}

func TestNotLoadedIsDistinctFromEmpty(t *testing.T) {
	v := NewView(nil)
	if v.Loaded() {
		t.Fatalf("nil catalog should not report loaded")
	}
	if got := v.ListVisibleProducts(); got != nil {
		t.Fatalf("expected nil before load, got %#v", got)
	}

	empty := NewView(New(nil))
	if got := empty.ListVisibleProducts(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestVisibleProductsAreCopies(t *testing.T) {
	v := sampleView(t)
	v.SetSearchTerm("ibuprofen")
	got := v.ListVisibleProducts()
	*got[0].OriginalPrice = 1
	got[0].Name = "changed"

	again := v.ListVisibleProducts()
	if again[0].Name != "Ibuprofen 400mg" || *again[0].OriginalPrice != 15.99 {
		t.Fatalf("catalog mutated through returned slice: %+v", again[0])
	}
}

func TestFindByIDAndRelated(t *testing.T) {
	c := New(SampleProducts())

	p, ok := c.FindByID("4")
	if !ok || p.Name != "Diclofenac Gel 1%" || !p.Prescription {
		t.Fatalf("unexpected product: %+v ok=%v", p, ok)
	}
	if _, ok := c.FindByID("999"); ok {
		t.Fatalf("unknown id should not be found")
	}

	if got := ids(c.Related("1", 3)); !reflect.DeepEqual(got, []string{"2"}) {
		t.Fatalf("expected related [2], got %v", got)
	}
	if got := ids(c.Related("5", 0)); !reflect.DeepEqual(got, []string{"3"}) {
		t.Fatalf("expected related [3], got %v", got)
	}
	if got := c.Related("999", 3); got == nil || len(got) != 0 {
		t.Fatalf("unknown id should yield empty related list, got %#v", got)
	}
}

func TestRelatedRespectsLimit(t *testing.T) {
	c := New([]Product{
		{ID: "1", Category: "x"},
		{ID: "2", Category: "x"},
		{ID: "3", Category: "y"},
		{ID: "4", Category: "x"},
		{ID: "5", Category: "x"},
	})
	if got := ids(c.Related("1", 2)); !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Fatalf("unexpected related: %v", got)
	}
}

func TestDiscountPercent(t *testing.T) {
	p, _ := New(SampleProducts()).FindByID("1")
	if got := p.DiscountPercent(); got != 19 {
		t.Fatalf("expected 19%% off, got %d", got)
	}
	plain, _ := New(SampleProducts()).FindByID("2")
	if plain.Discounted() || plain.DiscountPercent() != 0 {
		t.Fatalf("undiscounted product reported a discount")
	}
}

func TestCategoriesList(t *testing.T) {
	got := Categories()
	if len(got) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(got))
	}
	if got[0] != (Category{Value: "all", Label: "All Categories"}) {
		t.Fatalf("unexpected first category: %+v", got[0])
	}
	if got[1] != (Category{Value: "pain-relief", Label: "Pain Relief"}) {
		t.Fatalf("unexpected second category: %+v", got[1])
	}
}
