package handler

import (
	"nutrilokal-be/internal/pkg/logger"
	"nutrilokal-be/internal/pkg/serverutils"
	internalWS "nutrilokal-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// HistoryHandler upgrades browsers to the history event stream.
type HistoryHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewHistoryHandler(hub *internalWS.Hub, log logger.ILogger) *HistoryHandler {
	return &HistoryHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *HistoryHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/history", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *HistoryHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on a websocket handshake, so the query wins.
	clientID := c.Query("client_id")
	if clientID == "" {
		clientID = c.Get(serverutils.ClientIdHeader)
	}
	if clientID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing client id (Query 'client_id' or Header 'X-Client-Id')")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("HistoryHandler", "Starting WebSocket session", map[string]interface{}{"client_id": clientID})
		internalWS.ServeWs(h.hub, conn, clientID)
		h.logger.Info("HistoryHandler", "WebSocket session ended", map[string]interface{}{"client_id": clientID})
	})(c)
}
