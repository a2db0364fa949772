package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dao-activity-lab/internal/domain"
	"dao-activity-lab/internal/storage"
)

func TestRecordStore_InsertAndLoad(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)
	ctx := context.Background()

	tbl := &domain.Table{
		Category: "organizations",
		Columns:  []string{"orgAddress", "name", "createdAt"},
		Rows: [][]string{
			{"0xaaa", "Alpha", "1577836800"},
			{"0xbbb", "", ""},
			{"0xccc", "Gamma, Inc", "1580000000"},
		},
	}
	require.NoError(t, store.InsertTable(ctx, domain.PlatformAragon, tbl))

	loaded, err := store.Load(ctx, domain.PlatformAragon, "organizations")
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, loaded.Columns)
	assert.Equal(t, tbl.Rows, loaded.Rows)
	assert.Equal(t, "organizations", loaded.Category)
}

func TestRecordStore_EmptyTable(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)
	ctx := context.Background()

	tbl := &domain.Table{Category: "apps", Columns: []string{"organizationId"}}
	require.NoError(t, store.InsertTable(ctx, domain.PlatformAragon, tbl))

	loaded, err := store.Load(ctx, domain.PlatformAragon, "apps")
	require.NoError(t, err)
	assert.Empty(t, loaded.Rows)
}

func TestRecordStore_DuplicateCategory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)
	ctx := context.Background()

	tbl := &domain.Table{Category: "daos", Columns: []string{"dao"}, Rows: [][]string{{"0x1"}}}
	require.NoError(t, store.InsertTable(ctx, domain.PlatformDAOstack, tbl))

	err := store.InsertTable(ctx, domain.PlatformDAOstack, tbl)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same category under another platform is a different table.
	require.NoError(t, store.InsertTable(ctx, domain.PlatformDAOhaus, &domain.Table{Category: "daos", Columns: []string{"dao"}}))
}

func TestRecordStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)

	_, err := store.Load(context.Background(), domain.PlatformDAOhaus, "moloches")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecordStore_PlatformsAndCategories(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)
	ctx := context.Background()

	for _, c := range []string{"proposals", "moloches", "votes"} {
		require.NoError(t, store.InsertTable(ctx, domain.PlatformDAOhaus, &domain.Table{Category: c, Columns: []string{"molochAddress"}}))
	}
	require.NoError(t, store.InsertTable(ctx, domain.PlatformAragon, &domain.Table{Category: "organizations", Columns: []string{"orgAddress"}}))

	platforms, err := store.Platforms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{domain.PlatformAragon, domain.PlatformDAOhaus}, platforms)

	categories, err := store.Categories(ctx, domain.PlatformDAOhaus)
	require.NoError(t, err)
	assert.Equal(t, []string{"moloches", "proposals", "votes"}, categories)
}

func TestRecordStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewRecordStore(pool)

	err := store.InsertTable(context.Background(), domain.Platform("compound"), &domain.Table{Category: "x", Columns: []string{"a"}})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
