package order

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/storefront/internal/dto"
	"github.com/Additional-Code/storefront/internal/entity"
	"github.com/Additional-Code/storefront/internal/presentation/http/request"
	"github.com/Additional-Code/storefront/internal/presentation/http/response"
	service "github.com/Additional-Code/storefront/internal/service/order"
	"github.com/Additional-Code/storefront/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/storefront/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.GET("/:order_id", h.getByID)
	g.POST("/", h.create)
	g.POST("", h.create)
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := request.ParamID(c, "order_id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateOrderRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	orderDate, err := entity.ParseDate(*payload.OrderDate)
	if err != nil {
		return b.WithError(request.Invalid(request.FieldError{
			Loc:  []string{"body", "order_date"},
			Msg:  "invalid date format, expected YYYY-MM-DD",
			Type: "value_error.date",
		}, errorbank.WithCause(err))).Build()
	}

	order := &entity.Order{
		UserID:    *payload.UserID,
		ProductID: *payload.ProductID,
		OrderDate: orderDate,
		Status:    *payload.Status,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	span.SetAttributes(
		attribute.Int64("order.user_id", order.UserID),
		attribute.Int64("order.product_id", order.ProductID),
	)
	defer span.End()

	if err := h.svc.Create(ctx, order); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(order)).Build()
}

func toDTO(order *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
		OrderDate: order.OrderDate.String(),
		Status:    order.Status,
	}
}
