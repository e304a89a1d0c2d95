package handler

import (
	"rich-notes-be/internal/pkg/logger"
	"rich-notes-be/internal/pkg/serverutils"
	internalWS "rich-notes-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NotesSocketHandler upgrades clients that want live "notes_changed" pushes.
type NotesSocketHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewNotesSocketHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *NotesSocketHandler {
	return &NotesSocketHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *NotesSocketHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/notes", h.ServeWs)
}

// ServeWs authenticates the handshake and hands the connection to the hub.
// Browsers cannot set headers on websocket requests, so the token may come
// from the "token" query parameter.
func (h *NotesSocketHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := h.authenticate(c)
	if err != nil {
		h.logger.Warn("NotesSocketHandler", "Rejected websocket handshake", map[string]interface{}{"error": err})
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotesSocketHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("NotesSocketHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *NotesSocketHandler) authenticate(c *fiber.Ctx) (uuid.UUID, error) {
	if h.jwtSecret == "" {
		return uuid.Nil, nil
	}

	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	return serverutils.ParseUserToken(h.jwtSecret, tokenStr)
}
