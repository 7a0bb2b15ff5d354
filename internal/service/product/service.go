package product

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/storefront/internal/cache"
	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/entity"
	"github.com/Additional-Code/storefront/internal/event"
	repo "github.com/Additional-Code/storefront/internal/repository/product"
	"github.com/Additional-Code/storefront/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/storefront/service/product")

const cacheTable = "products"

// Service encapsulates business logic around products.
type Service struct {
	repo      *repo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher *event.Publisher
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  *event.Publisher
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
	}
}

// Get retrieves a product by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Product, error) {
	ctx, span := serviceTracer.Start(ctx, "ProductService.Get", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	if product, err := cache.GetJSON[entity.Product](ctx, s.cache, cache.Key(cacheTable, id)); err == nil {
		return product, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("products cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("Product not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load product", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, product)
	return product, nil
}

// Create persists a new product. Negative prices are accepted.
func (s *Service) Create(ctx context.Context, product *entity.Product) error {
	if product == nil {
		return errorbank.BadRequest("product payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "ProductService.Create", trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	if err := s.repo.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create product", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, product)
	s.publisher.RecordCreated(ctx, event.EntityProduct, product.ID)
	return nil
}

func (s *Service) storeInCache(ctx context.Context, product *entity.Product) {
	if err := cache.SetJSON(ctx, s.cache, cache.Key(cacheTable, product.ID), product, s.cacheTTL); err != nil {
		s.logger.Warn("products cache write failed", zap.Int64("id", product.ID), zap.Error(err))
	}
}
