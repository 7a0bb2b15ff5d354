package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Session is a single connection checked out of a pool for the duration of one operation.
type Session = bun.Conn

// WithSession checks a dedicated connection out of db, hands it to fn and always returns it
// to the pool, whether fn succeeds, fails or panics.
func WithSession(ctx context.Context, db *bun.DB, fn func(ctx context.Context, s Session) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}
