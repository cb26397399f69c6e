package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shasthoai/store-backend/internal/cart"
	"github.com/shasthoai/store-backend/internal/catalog"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	*kv.Memory
}

func (brokenStore) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func newRegistry(t *testing.T, store kv.Store) *Registry {
	t.Helper()
	r, err := NewRegistry(Options{
		Catalog:   catalog.New(catalog.SampleProducts()),
		Store:     store,
		Namespace: "shastho",
		Pricing:   cart.DefaultPricing(),
	})
	require.NoError(t, err)
	return r
}

func TestDefaultSessionUsesBareNamespace(t *testing.T) {
	store := kv.NewMemory()
	r := newRegistry(t, store)
	ctx := context.Background()

	s, err := r.Session(ctx, "")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "1", 1)
	require.NoError(t, err)

	_, ok, err := store.Get(ctx, "shastho_cart")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	store := kv.NewMemory()
	r := newRegistry(t, store)
	ctx := context.Background()

	a, err := r.Session(ctx, "alice")
	require.NoError(t, err)
	b, err := r.Session(ctx, "bob")
	require.NoError(t, err)

	_, err = a.AddToCart(ctx, "1", 2)
	require.NoError(t, err)
	a.SetSearchTerm("vitamin")

	assert.Equal(t, 2, a.TotalItems())
	assert.Equal(t, 0, b.TotalItems())
	assert.Len(t, a.ListVisibleProducts(), 1)
	assert.Len(t, b.ListVisibleProducts(), 6)

	_, ok, _ := store.Get(ctx, "shastho:alice_cart")
	assert.True(t, ok)

	again, err := r.Session(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, a, again)
}

func TestScenarioWalkthrough(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	ctx := context.Background()
	s, err := r.Session(ctx, "walk")
	require.NoError(t, err)

	view, err := s.AddToCart(ctx, "2", 1)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 1, view.TotalItems)
	assert.InDelta(t, 8.99, view.TotalPrice, 1e-9)
	assert.True(t, view.Persisted())

	view, err = s.AddToCart(ctx, "2", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Entries[0].Quantity)
	assert.InDelta(t, 17.98, view.TotalPrice, 1e-9)

	view = s.UpdateQuantity(ctx, "2", -2)
	assert.Empty(t, view.Entries)

	view = s.UpdateQuantity(ctx, "999", -1)
	assert.Empty(t, view.Entries)
	assert.True(t, view.Persisted())
}

func TestAddUnknownProductIsNotFound(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	s, err := r.Session(context.Background(), "")
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "999", 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, 0, s.TotalItems())
}

func TestAddZeroQuantityIsValidationError(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	s, err := r.Session(context.Background(), "")
	require.NoError(t, err)

	_, err = s.AddToCart(context.Background(), "1", 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRemoveFromCart(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	ctx := context.Background()
	s, err := r.Session(ctx, "")
	require.NoError(t, err)

	_, err = s.AddToCart(ctx, "3", 4)
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "5", 1)
	require.NoError(t, err)

	view := s.RemoveFromCart(ctx, "3")
	require.Len(t, view.Entries, 1)
	assert.Equal(t, "5", view.Entries[0].ID)

	view = s.RemoveFromCart(ctx, "3")
	assert.Len(t, view.Entries, 1)
}

func TestPersistFailureSurfacesOnView(t *testing.T) {
	r := newRegistry(t, brokenStore{kv.NewMemory()})
	ctx := context.Background()
	s, err := r.Session(ctx, "")
	require.NoError(t, err)

	view, err := s.AddToCart(ctx, "1", 1)
	require.NoError(t, err)
	assert.False(t, view.Persisted())
	assert.Equal(t, 1, view.TotalItems)
	assert.True(t, pkgerrors.IsCode(view.PersistError, pkgerrors.CodePersistence))
}

func TestApplyFiltersAndSnapshot(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	ctx := context.Background()
	s, err := r.Session(ctx, "")
	require.NoError(t, err)

	category := "pain-relief"
	sortKey := "price-high"
	visible := s.ApplyFilters(Filters{Category: &category, Sort: &sortKey})
	require.Len(t, visible, 2)
	assert.Equal(t, "1", visible[0].ID)

	_, err = s.AddToCart(ctx, "1", 1)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "", snap.SearchTerm)
	assert.Equal(t, "pain-relief", snap.SelectedCategory)
	assert.Equal(t, "price-high", snap.SortBy)
	assert.Len(t, snap.Medications, 2)
	assert.Len(t, snap.Categories, 5)
	assert.Equal(t, 1, snap.Cart.TotalItems)
	assert.False(t, snap.IsLoading)
}

func TestSnapshotWithoutCatalogIsLoading(t *testing.T) {
	r, err := NewRegistry(Options{Store: kv.NewMemory(), Namespace: "shastho"})
	require.NoError(t, err)
	s, err := r.Session(context.Background(), "")
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.True(t, snap.IsLoading)
	assert.Nil(t, snap.Medications)
}

func TestRelated(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	s, err := r.Session(context.Background(), "")
	require.NoError(t, err)

	related, err := s.Related("3")
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "5", related[0].ID)

	_, err = s.Related("999")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestSummaryUsesPricing(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	ctx := context.Background()
	s, err := r.Session(ctx, "")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "6", 2)
	require.NoError(t, err)

	sum := s.Summary()
	assert.True(t, sum.FreeShipping)
	assert.Equal(t, "91.98", sum.Subtotal.StringFixed(2))
	assert.Equal(t, "7.36", sum.Tax.StringFixed(2))
	assert.Equal(t, "99.34", sum.Total.StringFixed(2))
}

func TestInvalidSessionID(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	_, err := r.Session(context.Background(), "../../etc")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.True(t, ValidSessionID(""))
	assert.True(t, ValidSessionID("3f2b7c1e-0d7a-4a53-9d2b-1c9f6b8e2a10"))
}

func TestPruneRehydratesFromStore(t *testing.T) {
	store := kv.NewMemory()
	r := newRegistry(t, store)
	ctx := context.Background()
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	s, err := r.Session(ctx, "idle")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, "4", 3)
	require.NoError(t, err)

	clock = clock.Add(10 * time.Minute)
	assert.Equal(t, 0, r.Prune(time.Hour))
	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, r.Prune(time.Hour))
	assert.Equal(t, 0, r.Len())

	again, err := r.Session(ctx, "idle")
	require.NoError(t, err)
	assert.NotSame(t, s, again)
	assert.Equal(t, 3, again.TotalItems())
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	r := newRegistry(t, kv.NewMemory())
	ctx := context.Background()
	s, err := r.Session(ctx, "busy")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AddToCart(ctx, "1", 1)
			s.UpdateQuantity(ctx, "1", 1)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	view := s.Cart()
	require.Len(t, view.Entries, 1)
	assert.Equal(t, 40, view.TotalItems)
}
