package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shasthoai/store-backend/internal/catalog"
)

// Entry is a product held in the cart with its quantity.
type Entry struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price times quantity.
func (e Entry) Subtotal() float64 {
	return e.Price * float64(e.Quantity)
}

func (e Entry) clone() Entry {
	e.Product = e.Product.Clone()
	return e
}

// Encode serializes entries as the persisted JSON array.
func Encode(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(raw), nil
}

// Decode parses a persisted cart. Anything other than an array of entries
// with distinct non-empty ids and positive quantities is rejected.
func Decode(raw string) ([]Entry, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("decode cart: expected a JSON array")
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("decode cart: entry %d has no id", i)
		}
		if e.Quantity < 1 {
			return nil, fmt.Errorf("decode cart: entry %q has quantity %d", e.ID, e.Quantity)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("decode cart: duplicate entry %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
