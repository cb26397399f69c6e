// Package cart implements the write-through shopping cart.
package cart

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shasthoai/store-backend/internal/catalog"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/shasthoai/store-backend/pkg/metrics"
)

// Mutation names used for logging and metrics.
const (
	OpAdd         = "add"
	OpAddQuantity = "add_quantity"
	OpUpdate      = "update"
	OpRemove      = "remove"
)

// Key returns the persistence key for a namespace.
func Key(namespace string) string {
	return namespace + "_cart"
}

// Options wires a Manager.
type Options struct {
	Namespace string
	Store     kv.Store
	Logger    *logger.Logger
	Metrics   *metrics.StoreMetrics
}

// Manager owns one cart. It is not safe for concurrent use; callers serialize access.
type Manager struct {
	key     string
	store   kv.Store
	logg    *logger.Logger
	metrics *metrics.StoreMetrics

	entries []Entry
	lastErr error
}

// NewManager hydrates a cart from the store. A missing or malformed value
// yields an empty cart; only missing dependencies are reported as errors.
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("namespace required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	m := &Manager{
		key:     Key(opts.Namespace),
		store:   opts.Store,
		logg:    logg,
		metrics: opts.Metrics,
		entries: []Entry{},
	}
	m.hydrate(ctx)
	return m, nil
}

func (m *Manager) hydrate(ctx context.Context) {
	ctx = m.logg.WithField(ctx, "cart_key", m.key)

	raw, ok, err := m.store.Get(ctx, m.key)
	switch {
	case err != nil:
		m.metrics.IncHydration(metrics.HydrationReadError)
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "cart read failed; starting empty")
		return
	case !ok:
		m.metrics.IncHydration(metrics.HydrationEmpty)
		return
	}

	entries, err := Decode(raw)
	if err != nil {
		m.metrics.IncHydration(metrics.HydrationMalformed)
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "persisted cart malformed; starting empty")
		return
	}
	m.entries = entries
	m.metrics.IncHydration(metrics.HydrationLoaded)
	m.logg.Debug(m.logg.WithField(ctx, "entries", len(entries)), "cart hydrated")
}

// Key returns the persistence key of this cart.
func (m *Manager) Key() string {
	return m.key
}

// AddToCart appends the product with quantity 1, or increments an existing entry.
func (m *Manager) AddToCart(ctx context.Context, p catalog.Product) {
	m.add(p, 1)
	m.commit(ctx, OpAdd)
}

// AddQuantity adds n units of the product and persists once.
func (m *Manager) AddQuantity(ctx context.Context, p catalog.Product, n int) error {
	if n < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": n})
	}
	m.add(p, n)
	m.commit(ctx, OpAddQuantity)
	return nil
}

// UpdateQuantity shifts an entry's quantity by delta, clamped at zero. Zero
// removes the entry. Unknown ids leave the cart unchanged.
func (m *Manager) UpdateQuantity(ctx context.Context, id string, delta int) {
	if !m.update(id, delta) {
		m.logg.Debug(m.logg.WithFields(ctx, map[string]any{"product_id": id, "delta": delta}), "cart update ignored; product not in cart")
	}
	m.commit(ctx, OpUpdate)
}

// Remove drops the entry for id.
func (m *Manager) Remove(ctx context.Context, id string) {
	m.update(id, -m.Quantity(id))
	m.commit(ctx, OpRemove)
}

func (m *Manager) add(p catalog.Product, n int) {
	for i := range m.entries {
		if m.entries[i].ID == p.ID {
			m.entries[i].Quantity = addQuantity(m.entries[i].Quantity, n)
			return
		}
	}
	m.entries = append(m.entries, Entry{Product: p.Clone(), Quantity: n})
}

func (m *Manager) update(id string, delta int) bool {
	for i := range m.entries {
		if m.entries[i].ID != id {
			continue
		}
		next := max(0, addQuantity(m.entries[i].Quantity, delta))
		if next == 0 {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
		} else {
			m.entries[i].Quantity = next
		}
		return true
	}
	return false
}

// addQuantity returns q+delta, saturating at math.MaxInt and math.MinInt.
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return math.MinInt
	}
	return q + delta
}

// commit writes the whole cart through to the store. Failures are recorded
// and never undo the in-memory change.
func (m *Manager) commit(ctx context.Context, op string) {
	m.metrics.IncMutation(op)

	start := time.Now()
	err := m.persist(ctx)
	m.metrics.ObservePersist(time.Since(start), err)

	if err != nil {
		m.lastErr = pkgerrors.Wrap(pkgerrors.CodePersistence, err, "persist cart")
		m.logg.Error(m.logg.WithFields(ctx, map[string]any{"cart_key": m.key, "op": op}), "cart write-through failed", err)
		return
	}
	m.lastErr = nil
}

func (m *Manager) persist(ctx context.Context) error {
	raw, err := Encode(m.entries)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, m.key, raw)
}

// LastPersistError returns the error of the most recent write-through, or nil.
func (m *Manager) LastPersistError() error {
	return m.lastErr
}

// Entries returns a copy of the cart in insertion order.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.clone()
	}
	return out
}

// Quantity returns the quantity held for id, or 0.
func (m *Manager) Quantity(id string) int {
	for _, e := range m.entries {
		if e.ID == id {
			return e.Quantity
		}
	}
	return 0
}

// TotalPrice sums price times quantity over every entry.
func (m *Manager) TotalPrice() float64 {
	total := 0.0
	for _, e := range m.entries {
		total += e.Subtotal()
	}
	return total
}

// TotalItems sums quantities over every entry.
func (m *Manager) TotalItems() int {
	total := 0
	for _, e := range m.entries {
		total = addQuantity(total, e.Quantity)
	}
	return total
}
