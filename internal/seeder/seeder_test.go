package seeder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/database/databasetest"
	"github.com/Additional-Code/storefront/internal/entity"
)

func TestRunIsIdempotent(t *testing.T) {
	conns := databasetest.Open(t)
	s := New(conns, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, s.Run(ctx))
	require.NoError(t, s.Run(ctx))

	users, err := conns.Reader.NewSelect().Model((*entity.User)(nil)).Count(ctx)
	require.NoError(t, err)
	products, err := conns.Reader.NewSelect().Model((*entity.Product)(nil)).Count(ctx)
	require.NoError(t, err)
	orders, err := conns.Reader.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, len(sampleUsers), users)
	assert.Equal(t, len(sampleProducts), products)
	assert.Equal(t, 1, orders)

	var order entity.Order
	require.NoError(t, conns.Reader.NewSelect().Model(&order).Limit(1).Scan(ctx))
	assert.Equal(t, "pending", order.Status)
	assert.False(t, order.OrderDate.IsZero())
}
