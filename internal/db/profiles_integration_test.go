//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests require a running PostgreSQL database.
// Set TEST_DATABASE_URL to run them.

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	_, _ = db.pool.Exec(ctx, "DELETE FROM profiles WHERE name LIKE 'itest-%'")
	t.Cleanup(db.Close)
	return db
}

func TestIntegration_ProfileLifecycle(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	saved, err := db.SaveProfile(ctx, KindResume, "itest-ada", map[string]any{"summary": "Data engineer"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := db.GetProfile(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "itest-ada", got.Name)
	assert.JSONEq(t, `{"summary":"Data engineer"}`, string(got.Payload))

	list, err := db.ListProfiles(ctx, KindResume, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	require.NoError(t, db.DeleteProfile(ctx, saved.ID))
	_, err = db.GetProfile(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteProfile(ctx, saved.ID), ErrNotFound)
}

func TestIntegration_SaveProfileInvalidKind(t *testing.T) {
	db := getTestDB(t)
	_, err := db.SaveProfile(context.Background(), "alignment", "itest-x", map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidKind)
}
