package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/credkeeper/internal/common"
	"github.com/dmitrijs2005/credkeeper/internal/logging"
	"github.com/dmitrijs2005/credkeeper/internal/validation"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

var (
	errBadBody      = errors.New("malformed request body")
	errUnauthorized = errors.New("unauthorized")
)

// RequireAuth admits requests carrying a valid token cookie and stores the
// token subject on the context.
func RequireAuth(tokens TokenVerifier, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return errUnauthorized
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				return errUnauthorized
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the subject stored by RequireAuth, or "".
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// errorHandler renders every error returned by a handler into the
// {"errors": [...]} envelope. Anything unclassified is logged and becomes a
// generic 500.
func errorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verr *validation.ValidationError
		var herr *echo.HTTPError

		switch {
		case errors.As(err, &verr):
			_ = writeErrors(c, http.StatusBadRequest, verr.Messages...)
		case errors.Is(err, errBadBody):
			_ = writeErrors(c, http.StatusBadRequest, msgBadBody)
		case errors.Is(err, common.ErrInvalidInput):
			_ = writeErrors(c, http.StatusBadRequest, msgShortPassword)
		case errors.Is(err, common.ErrEmailTaken):
			_ = writeErrors(c, http.StatusConflict, msgEmailTaken)
		case errors.Is(err, common.ErrInvalidCredentials):
			_ = writeErrors(c, http.StatusUnauthorized, msgBadCredentials)
		case errors.Is(err, errUnauthorized):
			_ = writeErrors(c, http.StatusUnauthorized, msgUnauthorized)
		case errors.As(err, &herr) && herr.Code != http.StatusInternalServerError:
			_ = writeErrors(c, herr.Code, http.StatusText(herr.Code))
		default:
			log.Error(c.Request().Context(), "unhandled error",
				"error", err,
				"path", c.Request().URL.Path,
				"method", c.Request().Method,
			)
			_ = writeErrors(c, http.StatusInternalServerError, msgInternal)
		}
	}
}
