package instance

import "testing"

func TestGetIDPrefersExplicitID(t *testing.T) {
	t.Setenv("HOSTNAME", "host-1")
	t.Setenv("DYNO", "web.1")
	t.Setenv("SHASTHO_INSTANCE_ID", "store-a")
	if got := GetID(); got != "store-a" {
		t.Fatalf("expected explicit id, got %q", got)
	}

	t.Setenv("SHASTHO_INSTANCE_ID", "")
	if got := GetID(); got != "web.1" {
		t.Fatalf("expected dyno id, got %q", got)
	}
}

func TestGetIDDefault(t *testing.T) {
	t.Setenv("SHASTHO_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	t.Setenv("HOSTNAME", "")
	if got := GetID(); got != "local" {
		t.Fatalf("expected local, got %q", got)
	}
}
