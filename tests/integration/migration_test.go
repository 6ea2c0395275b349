package integration

import (
	"testing"

	"github.com/pos/backend/internal/infrastructure/migration"
	"github.com/pos/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrations_DownAndUpAgain(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	migrator, err := migration.NewEmbedded(testDB.SqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	listed, err := migration.ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, listed)
	latest := listed[len(listed)-1].Version

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, latest, version)
	assert.False(t, dirty)

	require.NoError(t, migrator.Down())
	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Zero(t, version)

	var tables int64
	require.NoError(t, testDB.DB.Raw(`
		SELECT count(*) FROM pg_tables
		WHERE schemaname = 'public' AND tablename != 'schema_migrations'
	`).Scan(&tables).Error)
	assert.Zero(t, tables)

	require.NoError(t, migrator.Steps(1))
	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, migrator.Up())
	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, latest, version)
}
