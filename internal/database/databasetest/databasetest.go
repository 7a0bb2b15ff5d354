// Package databasetest opens throwaway sqlite stores with the schema applied.
package databasetest

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/database"
	"github.com/Additional-Code/storefront/internal/migration"
)

// Config returns a sqlite configuration pointing at a fresh file under t.TempDir with
// foreign keys enforced.
func Config(t testing.TB) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	return config.Config{
		Database: config.Database{
			Driver:       "sqlite",
			WriterDSN:    dsn,
			ReaderDSN:    dsn,
			MaxOpenConns: 4,
			AutoMigrate:  true,
		},
	}
}

// Open returns migrated connections that are closed when the test ends.
func Open(t testing.TB) *database.Connections {
	t.Helper()
	return OpenWith(t, Config(t))
}

// OpenWith is Open for a caller-supplied configuration.
func OpenWith(t testing.TB, cfg config.Config) *database.Connections {
	t.Helper()

	conns, err := database.Open(cfg.Database)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = conns.Close() })

	mig, err := migration.New(cfg, conns, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("create migrator: %v", err)
	}
	if err := mig.Up(context.Background()); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return conns
}
