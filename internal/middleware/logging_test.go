package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogger_LogsRequestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := observability.Logger
	observability.Logger = observability.NewLogger(&buf, "development")
	t.Cleanup(func() { observability.Logger = prev })

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())
	app.Use(StructuredLogger())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out := buf.String()
	assert.Contains(t, out, "request processed")
	assert.Contains(t, out, "path=/ping")
	assert.Contains(t, out, "request_id=rid-123")
}

func TestTracingMiddleware_SetsTraceHeader(t *testing.T) {
	app := fiber.New()
	app.Use(TracingMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}
