package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Retailer Index")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_retailer_index.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_retailer_index.down.sql"))
	assert.Len(t, mf.Version, 14)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "Add Retailer Index")

	_, err = os.Stat(mf.DownPath)
	require.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Retailer Index", "add_retailer_index"},
		{"create-orders--table", "create_orders_table"},
		{"trailing space ", "trailing_space"},
		{"MIXED Case123", "mixed_case123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first")
	require.NoError(t, err)

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.True(t, strings.HasSuffix(migrations[0], "_first"))

	empty, err := ListMigrations(dir + "/missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
