package http

import (
	"go.uber.org/fx"

	ordertransport "github.com/Additional-Code/storefront/internal/transport/http/order"
	producttransport "github.com/Additional-Code/storefront/internal/transport/http/product"
	usertransport "github.com/Additional-Code/storefront/internal/transport/http/user"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	usertransport.Module,
	producttransport.Module,
	ordertransport.Module,
)
