package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, normalizeLimit(0))
	assert.Equal(t, DefaultListLimit, normalizeLimit(-3))
	assert.Equal(t, 7, normalizeLimit(7))
	assert.Equal(t, MaxListLimit, normalizeLimit(MaxListLimit+1))
}

func TestMigrationNames(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "001_resume_exports.sql", names[0])
	assert.IsNonDecreasing(t, names)
}

func TestMigrationsCreateExportTable(t *testing.T) {
	script, err := migrations.ReadFile("migrations/001_resume_exports.sql")
	require.NoError(t, err)
	assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS resume_exports")
}

func TestExportStoreName(t *testing.T) {
	assert.Equal(t, "postgres", NewExportStore(nil).Name())
}
