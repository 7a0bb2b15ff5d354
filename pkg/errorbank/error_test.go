package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestKindMappings(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   codes.Code
	}{
		{BadRequest("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{Conflict("dup"), http.StatusConflict, codes.AlreadyExists},
		{NotFound("User not found"), http.StatusNotFound, codes.NotFound},
		{Unprocessable("invalid"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind()), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.code, tt.err.GRPCCode())
		})
	}
}

func TestCauseAndDetails(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email")
	err := Internal("failed to create user",
		WithCause(cause),
		WithDetail("table", "users"),
		WithDetails(map[string]any{"op": "insert"}),
	)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to create user: UNIQUE constraint failed: users.email", err.Error())
	assert.Equal(t, "failed to create user", err.Message())
	assert.Equal(t, map[string]any{"table": "users", "op": "insert"}, err.Details())
}

func TestNewDefaultsMessageToKind(t *testing.T) {
	assert.Equal(t, "not_found", NotFound("").Message())
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	appErr := NotFound("Order not found")
	wrapped := errors.Join(errors.New("context"), appErr)
	assert.Same(t, appErr, From(wrapped))

	plain := errors.New("disk full")
	got := From(plain)
	assert.Equal(t, KindInternal, got.Kind())
	assert.ErrorIs(t, got, plain)
}

func TestNilAppError(t *testing.T) {
	var err *AppError
	assert.Equal(t, KindInternal, err.Kind())
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.Equal(t, codes.Internal, err.GRPCCode())
	assert.Empty(t, err.Message())
	assert.Nil(t, err.Unwrap())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("get user: %w", NotFound("User not found"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}
