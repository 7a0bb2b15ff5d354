package user

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
	repo "github.com/Additional-Code/storefront/internal/repository/user"
	"github.com/Additional-Code/storefront/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/storefront/service/user")

const cacheTable = "users"

// Service encapsulates business logic around users.
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

// Get retrieves a user by id, consulting cache when available.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := serviceTracer.Start(ctx, "UserService.Get", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	if user, err := cache.GetJSON[entity.User](ctx, s.cache, cache.Key(cacheTable, id)); err == nil {
		return user, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("users cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("User not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load user", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, user)
	return user, nil
}

// Create stores the user exactly as given; the password is not hashed. A duplicate email
// fails in the store and is reported as an internal error.
func (s *Service) Create(ctx context.Context, user *entity.User) error {
	if user == nil {
		return errorbank.BadRequest("user payload is required")
	}
	ctx, span := serviceTracer.Start(ctx, "UserService.Create")
	defer span.End()

	if err := s.repo.Create(ctx, user); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to create user", errorbank.WithCause(err))
	}

	s.storeInCache(ctx, user)
	s.publisher.RecordCreated(ctx, event.EntityUser, user.ID)
	return nil
}

func (s *Service) storeInCache(ctx context.Context, user *entity.User) {
	if err := cache.SetJSON(ctx, s.cache, cache.Key(cacheTable, user.ID), user, s.cacheTTL); err != nil {
		s.logger.Warn("users cache write failed", zap.Int64("id", user.ID), zap.Error(err))
	}
}
