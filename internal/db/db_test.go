package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidKind(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{KindResume, true},
		{KindJobDescription, true},
		{KindProfile, true},
		{"", false},
		{"Resume", false},
		{"alignment", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKind(tt.kind))
		})
	}
}

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_profiles.sql", names[0])

	sql, err := migrationsFS.ReadFile("migrations/" + names[0])
	require.NoError(t, err)
	assert.Contains(t, string(sql), "CREATE TABLE IF NOT EXISTS profiles")
}
