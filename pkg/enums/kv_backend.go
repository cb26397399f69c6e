package enums

import "fmt"

// KVBackend names the key-value store the cart is persisted to.
type KVBackend string

const (
	KVBackendMemory KVBackend = "memory"
	KVBackendRedis  KVBackend = "redis"
	KVBackendSQL    KVBackend = "sql"
)

var validKVBackends = []KVBackend{
	KVBackendMemory,
	KVBackendRedis,
	KVBackendSQL,
}

// String implements fmt.Stringer.
func (b KVBackend) String() string {
	return string(b)
}

// IsValid reports whether the value is a known KVBackend.
func (b KVBackend) IsValid() bool {
	for _, candidate := range validKVBackends {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseKVBackend converts raw input into a KVBackend.
func ParseKVBackend(value string) (KVBackend, error) {
	for _, candidate := range validKVBackends {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid kv backend %q", value)
}
