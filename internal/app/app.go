package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/storefront/internal/cache"
	"github.com/Additional-Code/storefront/internal/config"
	"github.com/Additional-Code/storefront/internal/database"
	"github.com/Additional-Code/storefront/internal/event"
	"github.com/Additional-Code/storefront/internal/logger"
	"github.com/Additional-Code/storefront/internal/messaging"
	"github.com/Additional-Code/storefront/internal/migration"
	"github.com/Additional-Code/storefront/internal/observability"
	repositoryorder "github.com/Additional-Code/storefront/internal/repository/order"
	repositoryproduct "github.com/Additional-Code/storefront/internal/repository/product"
	repositoryuser "github.com/Additional-Code/storefront/internal/repository/user"
	grpcserver "github.com/Additional-Code/storefront/internal/server/grpc"
	httpserver "github.com/Additional-Code/storefront/internal/server/http"
	serviceorder "github.com/Additional-Code/storefront/internal/service/order"
	serviceproduct "github.com/Additional-Code/storefront/internal/service/product"
	serviceuser "github.com/Additional-Code/storefront/internal/service/user"
	transporthttp "github.com/Additional-Code/storefront/internal/transport/http"
	"github.com/Additional-Code/storefront/internal/worker"
	workerrecord "github.com/Additional-Code/storefront/internal/worker/record"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	event.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryuser.Module,
	repositoryproduct.Module,
	repositoryorder.Module,
	serviceuser.Module,
	serviceproduct.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport (and the optional gRPC health server) on top of the core
// modules. The schema is created on start.
var HTTP = fx.Options(
	Core,
	migration.Module,
	httpserver.Module,
	transporthttp.Module,
	grpcserver.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerrecord.Module,
	fx.Invoke(func(*observability.Manager) {}),
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
