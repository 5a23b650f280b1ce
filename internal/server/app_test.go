package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/coursehub/internal/dbx"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func (m *fakeManager) Users(dbx.DBTX) users.Repository {
	return users.NewMemoryRepository()
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "postgres://unused"
	c.SecretKey = "app-test-secret"
	c.ShutdownTimeout = time.Second
	return c
}

// stubDeps replaces the database and repository seams for one test.
func stubDeps(t *testing.T, m *fakeManager) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origManager := openDB, newRepositoryManager
	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepositoryManager = func() repomanager.RepositoryManager { return m }
	t.Cleanup(func() {
		openDB, newRepositoryManager = origOpen, origManager
		_ = db.Close()
	})
	return mock
}

func TestNewApp_Success(t *testing.T) {
	m := &fakeManager{}
	mock := stubDeps(t, m)
	mock.ExpectPing()

	app, err := NewApp(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, app.server)
	assert.True(t, m.migrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_Failures(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		mock := stubDeps(t, &fakeManager{})
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig(), logging.NewNop())
		assert.ErrorContains(t, err, "db ping error")
	})

	t.Run("migrations", func(t *testing.T) {
		mock := stubDeps(t, &fakeManager{migrateErr: errors.New("dirty")})
		mock.ExpectPing()
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig(), logging.NewNop())
		assert.ErrorContains(t, err, "db migration error")
	})

	t.Run("open", func(t *testing.T) {
		orig := openDB
		openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
		t.Cleanup(func() { openDB = orig })

		_, err := NewApp(context.Background(), testConfig(), logging.NewNop())
		assert.ErrorContains(t, err, "db init error")
	})

	t.Run("hash algorithm", func(t *testing.T) {
		c := testConfig()
		c.PasswordHashAlgorithm = "md5"
		_, err := NewApp(context.Background(), c, logging.NewNop())
		assert.ErrorContains(t, err, "password hasher init error")
	})

	t.Run("empty secret", func(t *testing.T) {
		c := testConfig()
		c.SecretKey = ""
		_, err := NewApp(context.Background(), c, logging.NewNop())
		assert.ErrorContains(t, err, "token codec init error")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mock := stubDeps(t, &fakeManager{})
	mock.ExpectPing()
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
