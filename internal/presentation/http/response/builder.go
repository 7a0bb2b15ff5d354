package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Additional-Code/storefront/pkg/errorbank"
)

// DetailKey is the errorbank detail rendered in place of the message when present.
const DetailKey = "detail"

// Builder helps construct consistent HTTP responses. Successful responses carry the bare
// payload; failures carry {"detail": ...}.
type Builder struct {
	ctx    echo.Context
	status int
	data   any
	err    error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithData attaches a success payload.
func (b *Builder) WithData(data any) *Builder {
	b.data = data
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response. Internal errors are handed back to echo so
// the server error handler logs them before answering.
func (b *Builder) Build() error {
	if b.err != nil {
		if status, _ := Resolve(b.err); status >= http.StatusInternalServerError {
			return errorbank.From(b.err)
		}
		return Error(b.ctx, b.err)
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.ctx.JSON(b.status, b.data)
}

// Error writes err as a {"detail": ...} body with the matching status.
func Error(c echo.Context, err error) error {
	status, detail := Resolve(err)
	return c.JSON(status, map[string]any{"detail": detail})
}

// Resolve maps err onto a status code and the detail value shown to clients. Internal
// failures never leak their cause.
func Resolve(err error) (int, any) {
	var appErr *errorbank.AppError
	if errors.As(err, &appErr) {
		if appErr.Kind() == errorbank.KindInternal {
			return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
		}
		if detail, ok := appErr.Details()[DetailKey]; ok {
			return appErr.StatusCode(), detail
		}
		return appErr.StatusCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			return httpErr.Code, http.StatusText(httpErr.Code)
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
