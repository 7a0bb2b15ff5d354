package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/storefront/internal/database"
	"github.com/Additional-Code/storefront/internal/database/databasetest"
)

func openSingleConn(t *testing.T) *database.Connections {
	t.Helper()
	cfg := databasetest.Config(t)
	cfg.Database.MaxOpenConns = 1
	return databasetest.OpenWith(t, cfg)
}

func acquireWithin(t *testing.T, conns *database.Connections) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return database.WithSession(ctx, conns.Writer, func(ctx context.Context, s database.Session) error {
		return s.PingContext(ctx)
	})
}

func TestWithSessionReleasesOnError(t *testing.T) {
	conns := openSingleConn(t)
	boom := errors.New("boom")

	err := database.WithSession(context.Background(), conns.Writer, func(context.Context, database.Session) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.NoError(t, acquireWithin(t, conns))
}

func TestWithSessionReleasesOnPanic(t *testing.T) {
	conns := openSingleConn(t)

	assert.Panics(t, func() {
		_ = database.WithSession(context.Background(), conns.Writer, func(context.Context, database.Session) error {
			panic("boom")
		})
	})

	assert.NoError(t, acquireWithin(t, conns))
}

func TestWithSessionFailsOnCancelledContext(t *testing.T) {
	conns := openSingleConn(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := database.WithSession(ctx, conns.Writer, func(context.Context, database.Session) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := databasetest.Config(t)
	cfg.Database.Driver = "oracle"

	_, err := database.Open(cfg.Database)
	assert.Error(t, err)
}
