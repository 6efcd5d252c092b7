package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := map[string]struct {
		err        error
		wantStatus int
		wantReason string
	}{
		"required":        {err: errs.NewValueIsRequiredError("name"), wantStatus: http.StatusBadRequest},
		"joined invalid":  {err: errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), wantStatus: http.StatusBadRequest},
		"unauthenticated": {err: errs.NewUnauthenticatedError("expired"), wantStatus: http.StatusUnauthorized},
		"forbidden":       {err: errs.NewForbiddenError("not yours"), wantStatus: http.StatusForbidden},
		"not found":       {err: errs.NewObjectNotFoundError("order", "42"), wantStatus: http.StatusNotFound},
		"conflict": {
			err:        fmt.Errorf("accept: %w", errs.NewConflictError(errs.ReasonAlreadyInProgress, "taken")),
			wantStatus: http.StatusConflict,
			wantReason: "AlreadyInProgress",
		},
		"persistence": {err: errs.NewPersistenceError("commit transaction"), wantStatus: http.StatusServiceUnavailable},
		"echo":        {err: echo.NewHTTPError(http.StatusNotFound, "Not Found"), wantStatus: http.StatusNotFound},
		"unknown":     {err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			status, body := statusOf(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantReason, body.Reason)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestStatusOf_HidesInternalDetail(t *testing.T) {
	_, body := statusOf(errs.NewPersistenceErrorWithCause("get order", errors.New("dial tcp 10.0.0.5:5432")))
	assert.NotContains(t, body.Message, "10.0.0.5")

	_, body = statusOf(errors.New("nil pointer somewhere"))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), body.Message)
}
