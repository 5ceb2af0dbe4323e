package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lending-engine/internal/domain/loan"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors"`
	Code    int    `json:"code"`
}

func respond(c echo.Context, code int, message string, data, errs any) error {
	return c.JSON(code, Response{Message: message, Data: data, Errors: errs, Code: code})
}

// statusFor maps domain errors to HTTP statuses. Contention is the only
// transient one and signals the caller to retry.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrDuplicateBorrower),
		errors.Is(err, loan.ErrInvalidState),
		errors.Is(err, loan.ErrOverfunded):
		return http.StatusConflict
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidProof),
		errors.Is(err, loan.ErrInvalidAgreement),
		errors.Is(err, loan.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrContention):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, message string, err error) error {
	return respond(c, statusFor(err), message, nil, []string{err.Error()})
}
