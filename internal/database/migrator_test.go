package database

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFastRetries shrinks the retry knobs for the duration of a test.
func withFastRetries(t *testing.T, retries int, interval time.Duration) {
	t.Helper()

	prevRetries, prevInterval := maxRetries, retryInterval
	maxRetries = retries
	retryInterval = interval
	t.Cleanup(func() {
		maxRetries = prevRetries
		retryInterval = prevInterval
	})
}

func newPingableMock(t *testing.T) (*MigrationRunner, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewMigrationRunner(db), mock
}

func TestNewMigrationRunner(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunner(db)

	require.NotNil(t, runner)
	assert.Equal(t, db, runner.db)
	assert.Equal(t, migrationsPath, runner.migrationsPath)
}

func TestWaitForDatabase_ReadyImmediately(t *testing.T) {
	runner, mock := newPingableMock(t)
	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_RecoversAfterFailure(t *testing.T) {
	runner, mock := newPingableMock(t)
	withFastRetries(t, 2, 50*time.Millisecond)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_GivesUp(t *testing.T) {
	runner, mock := newPingableMock(t)
	withFastRetries(t, 2, 50*time.Millisecond)

	for i := 0; i < 2; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err := runner.WaitForDatabase()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestWaitForDatabase_SlowStartup(t *testing.T) {
	runner, mock := newPingableMock(t)
	withFastRetries(t, 4, 100*time.Millisecond)

	for i := 0; i < 3; i++ {
		mock.ExpectPing().WillDelayFor(100 * time.Millisecond).WillReturnError(errors.New("starting"))
	}
	mock.ExpectPing().WillReturnError(nil)

	start := time.Now()
	err := runner.WaitForDatabase()

	assert.NoError(t, err)
	assert.Greater(t, time.Since(start), 300*time.Millisecond, "should have slept between retries")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_MissingDirectorySkips(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{db: db, migrationsPath: "/nonexistent/path/to/migrations"}

	assert.NoError(t, runner.RunMigrations())
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("AUTO_MIGRATE", "false")

	assert.NoError(t, RunMigrationsIfEnabled(db))
}

func TestRunMigrationsIfEnabled_DatabaseNeverReady(t *testing.T) {
	runner, mock := newPingableMock(t)
	withFastRetries(t, 2, 50*time.Millisecond)

	t.Setenv("AUTO_MIGRATE", "true")
	for i := 0; i < 2; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err := RunMigrationsIfEnabled(runner.db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestGetMigrationStatus_MissingDirectory(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := &MigrationRunner{db: db, migrationsPath: "/nonexistent/migrations"}

	_, _, err = runner.GetMigrationStatus()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}
