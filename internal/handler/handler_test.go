package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invisio/invisio-backend/internal/model"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return e
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorBody {
	t.Helper()
	var body model.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
		msg    string
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError, model.CodeServerError, "An unexpected server error occurred."},
		{"enveloped", fail(http.StatusForbidden, model.CodeForbidden, "nope"), http.StatusForbidden, model.CodeForbidden, "nope"},
		{"with cause", failWith(errors.New("dial"), http.StatusInternalServerError, model.CodeLLMUnavailable, "down"), http.StatusInternalServerError, model.CodeLLMUnavailable, "down"},
		{"not found", echo.ErrNotFound, http.StatusNotFound, model.CodeNotFound, "Resource not found."},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, model.CodeNotFound, "Method not allowed."},
		{"too many", echo.NewHTTPError(http.StatusTooManyRequests), http.StatusTooManyRequests, model.CodeTooManyRequest, "Too many requests. Try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.GET("/x", func(echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Message)
		})
	}
}

func TestErrorHandlerHeadHasNoBody(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBindValid(t *testing.T) {
	type req struct {
		Headline string `json:"headline" validate:"required,max=5"`
	}
	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"headline":"abc"}`, model.CodeOK},
		{"broken json", `{"headline":`, model.CodeInvalidJSON},
		{"wrong type", `{"headline":7}`, model.CodeInvalidJSON},
		{"missing", `{}`, model.CodeValidation},
		{"too long", `{"headline":"abcdef"}`, model.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho()
			e.POST("/x", func(c echo.Context) error {
				var r req
				if err := bindValid(c, &r, "Invalid data."); err != nil {
					return err
				}
				return c.JSON(http.StatusOK, model.Fail(model.CodeOK, r.Headline))
			})
			httpReq := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httpReq)

			body := decodeBody(t, rec)
			assert.Equal(t, tt.code, body.Code)
			if tt.code == model.CodeValidation {
				assert.Equal(t, "Invalid data.", body.Message)
			}
		})
	}
}

func TestReady(t *testing.T) {
	e := newEcho()
	e.GET("/readyz", Ready(map[string]Check{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body struct {
		Code   int               `json:"code"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, model.CodeServerError, body.Code)
	assert.Equal(t, "ok", body.Checks["mongo"])
	assert.Equal(t, "connection refused", body.Checks["redis"])
}

func TestSubjectWithoutClaims(t *testing.T) {
	e := newEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := subject(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
	assert.Equal(t, model.CodeUnauthorized, he.Message.(model.ErrorBody).Code)
}
