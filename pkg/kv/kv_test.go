package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, err := store.Get(ctx, "shastho_cart"); err != nil || ok {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "shastho_cart", "[]"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, "shastho_cart", `[{"id":"1"}]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	v, ok, err := store.Get(ctx, "shastho_cart")
	if err != nil || !ok {
		t.Fatalf("expected value, ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"1"}]` {
		t.Fatalf("expected overwritten value, got %q", v)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one key, got %d", store.Len())
	}
}

func TestMemoryClosed(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := store.Set(ctx, "k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Set, got %v", err)
	}
	if _, _, err := store.Get(ctx, "k"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Get, got %v", err)
	}
	if err := store.Ping(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Ping, got %v", err)
	}
}
