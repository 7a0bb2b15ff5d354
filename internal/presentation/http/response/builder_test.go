package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/storefront/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return echo.New().NewContext(req, rec), rec
}

func TestBuildWritesBarePayload(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, New(c).WithData(map[string]int{"id": 1}).Build())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestBuildRendersClientErrors(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, New(c).WithError(errorbank.NotFound("User not found")).Build())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, rec.Body.String())
}

func TestBuildReturnsInternalErrors(t *testing.T) {
	c, rec := newContext()
	cause := errors.New("constraint failed")

	err := New(c).WithError(cause).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.False(t, c.Response().Committed)
	assert.Zero(t, rec.Body.Len())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail any
	}{
		{"not found", errorbank.NotFound("Product not found"), http.StatusNotFound, "Product not found"},
		{"internal hides cause", errorbank.Internal("failed to create user", errorbank.WithCause(errors.New("UNIQUE"))), http.StatusInternalServerError, "Internal Server Error"},
		{"detail wins", errorbank.Unprocessable("invalid", errorbank.WithDetail(DetailKey, []string{"x"})), http.StatusUnprocessableEntity, []string{"x"}},
		{"echo error", echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported Media Type"), http.StatusUnsupportedMediaType, "Unsupported Media Type"},
		{"echo server error", echo.NewHTTPError(http.StatusServiceUnavailable, "db down"), http.StatusServiceUnavailable, "Service Unavailable"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := Resolve(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.detail, detail)
		})
	}
}
