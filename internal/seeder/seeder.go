package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/storefront/internal/database"
	"github.com/Additional-Code/storefront/internal/entity"
)

// Module provides the Seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Run seeds sample users, products and one order linking them. Running it twice leaves the
// store unchanged.
func (s *Seeder) Run(ctx context.Context) error {
	return database.WithSession(ctx, s.db, func(ctx context.Context, sess database.Session) error {
		if err := s.users(ctx, sess); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		if err := s.products(ctx, sess); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := s.orders(ctx, sess); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		return nil
	})
}

var sampleUsers = []entity.User{
	{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "changeme"},
	{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Password: "changeme"},
}

var sampleProducts = []entity.Product{
	{Name: "Pen", Description: "Blue ink", Price: 1.5},
	{Name: "Notebook", Description: "A5, dotted", Price: 4.25},
}

// users relies on the unique email to skip rows that already exist. Skipped rows return
// nothing, so RETURNING is turned off.
func (s *Seeder) users(ctx context.Context, sess database.Session) error {
	for _, sample := range sampleUsers {
		user := sample
		if _, err := sess.NewInsert().Model(&user).Ignore().Returning("NULL").Exec(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("seeded users", zap.Int("count", len(sampleUsers)))
	return nil
}

// products have no natural key, so they are only seeded into an empty table.
func (s *Seeder) products(ctx context.Context, sess database.Session) error {
	count, err := sess.NewSelect().Model((*entity.Product)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("products already present; skipping", zap.Int("count", count))
		return nil
	}
	products := append([]entity.Product(nil), sampleProducts...)
	if _, err := sess.NewInsert().Model(&products).Exec(ctx); err != nil {
		return err
	}
	s.logger.Info("seeded products", zap.Int("count", len(products)))
	return nil
}

func (s *Seeder) orders(ctx context.Context, sess database.Session) error {
	count, err := sess.NewSelect().Model((*entity.Order)(nil)).Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("orders already present; skipping", zap.Int("count", count))
		return nil
	}

	buyer := new(entity.User)
	if err := sess.NewSelect().Model(buyer).Where("email = ?", sampleUsers[0].Email).Scan(ctx); err != nil {
		return err
	}
	item := new(entity.Product)
	if err := sess.NewSelect().Model(item).Order("id ASC").Limit(1).Scan(ctx); err != nil {
		return err
	}

	today := time.Now().UTC()
	order := &entity.Order{
		UserID:    buyer.ID,
		ProductID: item.ID,
		OrderDate: entity.NewDate(today.Year(), today.Month(), today.Day()),
		Status:    "pending",
	}
	if _, err := sess.NewInsert().Model(order).Exec(ctx); err != nil {
		return err
	}
	s.logger.Info("seeded orders", zap.Int("count", 1))
	return nil
}
