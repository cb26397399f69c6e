package migrate

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/shasthoai/store-backend/pkg/config"
	"github.com/shasthoai/store-backend/pkg/db"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	bad := fstest.MapFS{
		"m/create.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(bad, "m"))

	missingDown := fstest.MapFS{
		"m/20260101000000_x.sql": {Data: []byte("-- +goose Up\nSELECT 1;\n")},
	}
	assert.Error(t, ValidateFS(missingDown, "m"))

	dup := fstest.MapFS{
		"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
	}
	assert.Error(t, ValidateFS(dup, "m"))
}

func TestDialect(t *testing.T) {
	d, err := Dialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", d)

	d, err = Dialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d)

	_, err = Dialect("mysql")
	assert.Error(t, err)
}

func TestMaybeRunCreatesKVTable(t *testing.T) {
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{Driver: "sqlite", DSN: "file:migrate_up?mode=memory&cache=shared"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true}}
	require.NoError(t, MaybeRun(ctx, cfg, logger.Nop(), client))

	store := db.NewKVStore(client)
	require.NoError(t, store.Set(ctx, "shastho_cart", "[]"))
	v, ok, err := store.Get(ctx, "shastho_cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	// second run is a no-op
	require.NoError(t, MaybeRun(ctx, cfg, logger.Nop(), client))
}

func TestMaybeRunSkipsWhenDisabled(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, MaybeRun(context.Background(), cfg, logger.Nop(), nil))
}
