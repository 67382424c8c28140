// Package testdb opens migrated in-memory catalog databases for tests.
package testdb

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/database"
	"github.com/OkoraHeeke/sikora-digital-showroom-sub001/pkg/logging"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var counter atomic.Int64

// MigrationsPath is the absolute path of db/migrations.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "migrations")
}

// New returns an empty, fully migrated SQLite catalog private to the test.
func New(t *testing.T) database.DB {
	t.Helper()

	name := fmt.Sprintf("file:showroom_test_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1))
	conn, err := sqlx.Open(database.DriverSQLite, name)
	require.NoError(t, err)
	// a shared in-memory database lives as long as one connection does
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	logger := logging.Nop()
	db := database.NewDatabaseInstance(conn, logger)

	migrations := database.NewMigrationService(logger, &database.MigrationConfig{MigrationFolderPath: MigrationsPath()})
	require.NoError(t, migrations.Migrate(db))

	return db
}

// NewMock returns a DB backed by sqlmock. Queries are matched as regular expressions.
func NewMock(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return database.NewDatabaseInstance(sqlx.NewDb(conn, "sqlmock"), logging.Nop()), mock
}

// Exec runs statements in order, failing the test on the first error.
func Exec(t *testing.T, db database.DB, statements ...string) {
	t.Helper()
	for _, stmt := range statements {
		_, err := db.SQL().Exec(stmt)
		require.NoError(t, err, stmt)
	}
}
