package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "runcoach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_first.sql"), []byte(`CREATE TABLE a (id TEXT PRIMARY KEY);`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002_second.sql"), []byte(`CREATE TABLE b (id TEXT PRIMARY KEY);`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a migration"), 0o644))

	require.NoError(t, RunMigrations(database, dir))
	require.NoError(t, RunMigrations(database, dir))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrationsRollsBackBrokenFile(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "runcoach.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_broken.sql"), []byte(`CREATE TABLE oops (`), 0o644))

	assert.Error(t, RunMigrations(database, dir))

	applied, err := migrator{db: database, dir: dir}.applied("0001_broken.sql")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestMigratorListsOnlySQLFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o755))

	names, err := migrator{dir: dir}.files()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, names)
}
