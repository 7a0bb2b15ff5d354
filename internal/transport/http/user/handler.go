package user

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/storefront/internal/dto"
	"github.com/Additional-Code/storefront/internal/entity"
	"github.com/Additional-Code/storefront/internal/presentation/http/request"
	"github.com/Additional-Code/storefront/internal/presentation/http/response"
	service "github.com/Additional-Code/storefront/internal/service/user"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/storefront/transport/http/user")

// Handler exposes user endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a user Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/users")
	g.GET("/:user_id", h.getByID)
	g.POST("/", h.create)
	g.POST("", h.create)
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := request.ParamID(c, "user_id")
	if err != nil {
		return b.WithError(err).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.getByID", trace.WithAttributes(attribute.Int64("user.id", id)))
	defer span.End()

	user, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(user)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreateUserRequest
	if err := request.Bind(c, &payload); err != nil {
		return b.WithError(err).Build()
	}

	user := &entity.User{
		FirstName: *payload.FirstName,
		LastName:  *payload.LastName,
		Email:     *payload.Email,
		Password:  *payload.Password,
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.create")
	defer span.End()

	if err := h.svc.Create(ctx, user); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toDTO(user)).Build()
}

func toDTO(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}
