package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deliverycontext "chime/internal/delivery/context"
)

func serveWithRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seen string
	handler := m.Process(func(c echo.Context) error {
		seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		assert.Equal(t, seen, deliverycontext.GetRequestID(c))
		assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	return rec, seen
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	rec, seen := serveWithRequestID(t, "req-123")

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_GeneratesWhenMissing(t *testing.T) {
	rec, seen := serveWithRequestID(t, "")

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	for _, id := range []string{strings.Repeat("a", maxRequestIDLength+1), "has space", "ünïcode"} {
		_, seen := serveWithRequestID(t, id)
		assert.NotEqual(t, id, seen)
		assert.Len(t, seen, 36)
	}
}
