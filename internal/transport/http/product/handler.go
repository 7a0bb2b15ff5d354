package product

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/storefront/internal/dto"
	"github.com/Additional-Code/storefront/internal/entity"
	"github.com/Additional-Code/storefront/internal/presentation/http/request"
	"github.com/Additional-Code/storefront/internal/presentation/http/response"
	service "github.com/Additional-Code/storefront/internal/service/product"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/storefront/transport/http/product")

// Handler exposes product endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a product Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/products")
	g.GET("/:product_id", h.getByID)
	g.POST("/", h.create)
	g.POST("", h.create)
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := request.ParamID(c, "product_id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.getByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	product, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(product)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateProductRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	product := &entity.Product{
		Name:        *payload.Name,
		Description: *payload.Description,
		Price:       *payload.Price,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "products.create")
	span.SetAttributes(attribute.String("product.name", product.Name))
	defer span.End()

	if err := h.svc.Create(ctx, product); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(product)).Build()
}

func toDTO(product *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}
