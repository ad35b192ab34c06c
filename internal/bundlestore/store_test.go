package bundlestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codetalcott/hyperfixi/internal/bundle"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	file := filepath.Join(t.TempDir(), "bundles.db")
	st, err := Open(file)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testConfig(name string) bundle.Config {
	return bundle.Config{
		Name:     name,
		Commands: []string{"set", "add"},
	}
}

func TestConfigHash_sameConfigSameHash(t *testing.T) {
	cfg := testConfig("widget")
	h1, err := ConfigHash(cfg)
	require.NoError(t, err)
	h2, err := ConfigHash(cfg)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestConfigHash_differentConfigDifferentHash(t *testing.T) {
	h1, err := ConfigHash(testConfig("widget"))
	require.NoError(t, err)
	h2, err := ConfigHash(testConfig("gadget"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestStore_putThenGetByID(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	cfg := testConfig("widget")
	res := bundle.Result{Code: "// widget bundle", Commands: cfg.Commands}

	art, err := st.Put(ctx, cfg, res)
	require.NoError(t, err)

	got, err := st.GetByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, art.ID, got.ID)
	assert.Equal(t, "widget", got.Config.Name)
	assert.Equal(t, "// widget bundle", got.Result.Code)
}

func TestStore_putThenGetByConfigHash(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	cfg := testConfig("widget")
	res := bundle.Result{Code: "// widget bundle"}

	art, err := st.Put(ctx, cfg, res)
	require.NoError(t, err)

	got, err := st.GetByConfigHash(ctx, art.ConfigHash)
	require.NoError(t, err)
	assert.Equal(t, art.ID, got.ID)
}

func TestStore_putIsIdempotentForIdenticalConfig(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	cfg := testConfig("widget")
	res := bundle.Result{Code: "// widget bundle"}

	first, err := st.Put(ctx, cfg, res)
	require.NoError(t, err)

	second, err := st.Put(ctx, cfg, res)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "repeat Put of an identical config should return the cached artifact, not insert a duplicate row")
}

func TestStore_getByIDNotFound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_getByConfigHashNotFound(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.GetByConfigHash(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}
