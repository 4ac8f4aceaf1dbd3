package handler

import (
	"errors"

	"party-advisor-be/internal/pkg/logger"
	"party-advisor-be/internal/pkg/serverutils"
	"party-advisor-be/internal/service"
	internalWS "party-advisor-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

// ChatStreamHandler serves the live channel of a session: every reply
// snapshot and knowledge change is pushed as a JSON frame.
type ChatStreamHandler struct {
	chatbotService service.IChatbotService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewChatStreamHandler(chatbotService service.IChatbotService, hub *internalWS.Hub, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		chatbotService: chatbotService,
		hub:            hub,
		logger:         log,
	}
}

func (h *ChatStreamHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/chat/v1/sessions/:id/ws", auth, h.ServeWs)
}

func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Params alias the pooled request buffer; the upgraded connection outlives it.
	sessionID := utils.CopyString(c.Params("id"))
	if _, err := h.chatbotService.GetSession(c.UserContext(), sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	userID := utils.CopyString(serverutils.UserID(c))

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatStreamHandler", "Starting WebSocket session", map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("ChatStreamHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
	})(c)
}
