package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/database"
	"github.com/Additional-Code/storefront/internal/database/databasetest"
	"github.com/Additional-Code/storefront/internal/entity"
	"github.com/Additional-Code/storefront/internal/event"
	"github.com/Additional-Code/storefront/internal/repository"
	repo "github.com/Additional-Code/storefront/internal/repository/order"
	"github.com/Additional-Code/storefront/pkg/errorbank"
)

func setup(t *testing.T) (*Service, *database.Connections) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	conns := databasetest.Open(t)
	svc := NewService(Params{
		Repository: repo.NewRepository(conns),
		Config:     config.Config{},
		Logger:     logger,
		Publisher:  event.NewPublisher(nil, false, logger),
	})
	return svc, conns
}

func seedUserAndProduct(t *testing.T, conns *database.Connections) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repository.InsertAndReload(ctx, conns.Writer, &entity.User{Email: "buyer@example.com"}))
	require.NoError(t, repository.InsertAndReload(ctx, conns.Writer, &entity.Product{Name: "Pen", Price: 1.5}))
}

func TestTwoOrdersForSameUserAndProduct(t *testing.T) {
	svc, conns := setup(t)
	seedUserAndProduct(t, conns)
	ctx := context.Background()

	first := &entity.Order{UserID: 1, ProductID: 1, OrderDate: entity.NewDate(2024, time.May, 1), Status: "pending"}
	second := &entity.Order{UserID: 1, ProductID: 1, OrderDate: entity.NewDate(2024, time.May, 2), Status: "shipped"}
	require.NoError(t, svc.Create(ctx, first))
	require.NoError(t, svc.Create(ctx, second))
	require.NotEqual(t, first.ID, second.ID)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.Equal(t, "2024-05-01", got.OrderDate.String())

	got, err = svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Status)
}

func TestCreateWithUnknownProductFailsInStore(t *testing.T) {
	svc, conns := setup(t)
	seedUserAndProduct(t, conns)

	err := svc.Create(context.Background(), &entity.Order{UserID: 1, ProductID: 404, OrderDate: entity.NewDate(2024, time.May, 1), Status: "pending"})

	require.Error(t, err)
	assert.Equal(t, errorbank.KindInternal, errorbank.KindOf(err))
}

func TestGetMissingOrder(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Get(context.Background(), 1)

	appErr := errorbank.From(err)
	assert.Equal(t, errorbank.KindNotFound, appErr.Kind())
	assert.Equal(t, "Order not found", appErr.Message())
}
