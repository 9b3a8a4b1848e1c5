package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
)

// ErrorHandler renders every error that escapes a handler as a
// {code, message} body. HTTP errors carrying a model.ErrorBody are sent as
// is; routing errors get an envelope matching their status; anything else
// is logged and reported as a generic 500.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := http.StatusInternalServerError, model.Fail(model.CodeServerError, "An unexpected server error occurred.")

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if eb, ok := he.Message.(model.ErrorBody); ok {
				body = eb
			} else {
				body = envelopeFor(he.Code)
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Any("err", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Error("write error response", slog.Any("err", err))
		}
	}
}

func envelopeFor(status int) model.ErrorBody {
	switch status {
	case http.StatusNotFound:
		return model.Fail(model.CodeNotFound, "Resource not found.")
	case http.StatusMethodNotAllowed:
		return model.Fail(model.CodeNotFound, "Method not allowed.")
	case http.StatusUnauthorized:
		return model.Fail(model.CodeUnauthorized, "Unauthorized.")
	case http.StatusForbidden:
		return model.Fail(model.CodeForbidden, "Forbidden.")
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return model.Fail(model.CodeInvalidJSON, "Invalid JSON payload.")
	case http.StatusTooManyRequests:
		return model.Fail(model.CodeTooManyRequest, "Too many requests. Try again later.")
	}
	if status >= http.StatusInternalServerError {
		return model.Fail(model.CodeServerError, "An unexpected server error occurred.")
	}
	return model.Fail(model.CodeValidation, http.StatusText(status))
}

// subject returns the authenticated account id or a 401 error.
func subject(c echo.Context) (string, error) {
	cl, ok := claimsOf(c)
	if !ok || cl.Subject == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized,
			model.Fail(model.CodeUnauthorized, "User not authenticated or ID not found in token."))
	}
	return cl.Subject, nil
}

func fail(status, code int, msg string) error {
	return echo.NewHTTPError(status, model.Fail(code, msg))
}

// failWith is fail with the underlying cause attached for logging.
func failWith(cause error, status, code int, msg string) error {
	return echo.NewHTTPError(status, model.Fail(code, msg)).WithInternal(cause)
}
