package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/storefront/internal/database/databasetest"
	"github.com/Additional-Code/storefront/internal/entity"
)

func TestInsertAndReloadAssignsIDs(t *testing.T) {
	conns := databasetest.Open(t)
	ctx := context.Background()

	first := &entity.Product{Name: "Pen", Description: "Blue ink", Price: 1.5}
	second := &entity.Product{Name: "Pad", Description: "A5", Price: 3}
	require.NoError(t, InsertAndReload(ctx, conns.Writer, first))
	require.NoError(t, InsertAndReload(ctx, conns.Writer, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "Pen", first.Name)
	assert.InDelta(t, 1.5, first.Price, 1e-9)
}

func TestFindByID(t *testing.T) {
	conns := databasetest.Open(t)
	ctx := context.Background()

	user := &entity.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "pw"}
	require.NoError(t, InsertAndReload(ctx, conns.Writer, user))

	got, err := FindByID[entity.User](ctx, conns.Reader, user.ID)
	require.NoError(t, err)
	assert.Equal(t, *user, *got)

	_, err = FindByID[entity.User](ctx, conns.Reader, user.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertAndReloadSurfacesConstraintViolations(t *testing.T) {
	conns := databasetest.Open(t)
	ctx := context.Background()

	require.NoError(t, InsertAndReload(ctx, conns.Writer, &entity.User{Email: "dup@example.com"}))
	err := InsertAndReload(ctx, conns.Writer, &entity.User{Email: "dup@example.com"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	order := &entity.Order{UserID: 1, ProductID: 99, OrderDate: entity.NewDate(2024, time.January, 2), Status: "new"}
	assert.Error(t, InsertAndReload(ctx, conns.Writer, order))
}

func TestInsertAndReloadRoundTripsOrderDate(t *testing.T) {
	conns := databasetest.Open(t)
	ctx := context.Background()

	require.NoError(t, InsertAndReload(ctx, conns.Writer, &entity.User{Email: "u@example.com"}))
	require.NoError(t, InsertAndReload(ctx, conns.Writer, &entity.Product{Name: "Pen"}))

	order := &entity.Order{UserID: 1, ProductID: 1, OrderDate: entity.NewDate(2024, time.February, 29), Status: "pending"}
	require.NoError(t, InsertAndReload(ctx, conns.Writer, order))

	got, err := FindByID[entity.Order](ctx, conns.Reader, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got.OrderDate.String())
	assert.Equal(t, "pending", got.Status)
}

func TestInsertAndReloadRejectsNil(t *testing.T) {
	conns := databasetest.Open(t)

	assert.Error(t, InsertAndReload[entity.User](context.Background(), conns.Writer, nil))
}
