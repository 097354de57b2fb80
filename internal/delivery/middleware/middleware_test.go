package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobhub/config"
	deliverycontext "jobhub/internal/delivery/context"
	domainerrors "jobhub/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChain(t *testing.T, debug bool, h echo.HandlerFunc) (*echo.Echo, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
	e.GET("/", h)

	return e, &buf
}

func TestRequestIDMiddleware_KeepsSafeHeader(t *testing.T) {
	var seen string
	e, _ := newChain(t, false, func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", seen)
	assert.Equal(t, "trace-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesUnsafeHeader(t *testing.T) {
	e, _ := newChain(t, false, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "bad id<script>")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	_, err := uuid.Parse(rec.Header().Get(deliverycontext.HeaderXRequestID))
	require.NoError(t, err)
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		handler   echo.HandlerFunc
		wantLog   bool
		wantParts []string
	}{
		{
			name:    "quiet outside debug",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		},
		{
			name:      "debug logs every request",
			debug:     true,
			handler:   func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantLog:   true,
			wantParts: []string{`"status":200`, `"request_id"`},
		},
		{
			name:      "server errors always logged",
			handler:   func(echo.Context) error { return domainerrors.ErrInternalError },
			wantLog:   true,
			wantParts: []string{`"status":500`, `"error_code":"INTERNAL_ERROR"`, `"level":"ERROR"`},
		},
		{
			name:      "client errors carry their code in debug",
			debug:     true,
			handler:   func(echo.Context) error { return domainerrors.ErrJobNotFound },
			wantLog:   true,
			wantParts: []string{`"status":404`, `"error_code":"JOB_NOT_FOUND"`, `"level":"WARN"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := newChain(t, tt.debug, tt.handler)
			e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			if !tt.wantLog {
				assert.Empty(t, buf.String())

				return
			}
			for _, part := range tt.wantParts {
				assert.Contains(t, buf.String(), part)
			}
		})
	}
}
