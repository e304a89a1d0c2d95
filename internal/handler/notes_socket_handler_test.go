package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rich-notes-be/internal/pkg/logger"
	"rich-notes-be/internal/pkg/serverutils"
	internalWS "rich-notes-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSocketApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	h := NewNotesSocketHandler(internalWS.NewHub(nil, logger.NewNopLogger()), secret, logger.NewNopLogger())
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func upgradeRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestServeWsRejectsPlainRequests(t *testing.T) {
	resp, err := newSocketApp("").Test(httptest.NewRequest(http.MethodGet, "/api/ws/notes", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestServeWsRequiresValidToken(t *testing.T) {
	app := newSocketApp("secret")

	tests := []struct {
		name   string
		target string
	}{
		{"no token", "/api/ws/notes"},
		{"bad token", "/api/ws/notes?token=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(upgradeRequest(tt.target))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
