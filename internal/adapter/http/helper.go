package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loanchain-web/internal/domain/chain"
	"loanchain-web/internal/domain/notice"
	"loanchain-web/internal/domain/user"
	"loanchain-web/internal/usecase/action"
	"loanchain-web/internal/usecase/connector"
	"loanchain-web/internal/usecase/dashboard"
	"loanchain-web/internal/usecase/session"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// statusFor maps usecase errors → HTTP codes. Anything unknown came from the
// chain or the store.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, action.ErrNotConnected), errors.Is(err, dashboard.ErrNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, action.ErrInvalidInput),
		errors.Is(err, session.ErrMissingCredentials),
		errors.Is(err, session.ErrMissingFields),
		errors.Is(err, session.ErrPasswordMismatch),
		errors.Is(err, session.ErrTermsNotAccepted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, action.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, action.ErrUnknownKind):
		return http.StatusNotFound
	case errors.Is(err, user.ErrExists):
		return http.StatusConflict
	case errors.Is(err, connector.ErrNoProvider):
		return http.StatusServiceUnavailable
	case errors.Is(err, chain.ErrUserRejected):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// invalid answers a failed bind or validation with the form's toast.
func invalid(c echo.Context, err error, t notice.Toast) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
		Toast:   &t,
	})
}

// wantsJSON reports whether the caller asked for JSON rather than a page.
func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
