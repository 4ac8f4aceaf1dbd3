package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"party-advisor-be/internal/dto"
	"party-advisor-be/internal/pkg/serverutils"
	"party-advisor-be/internal/service"
	"party-advisor-be/pkg/speech"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/valyala/fasthttp"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	SetMode(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	AskSuggestion(ctx *fiber.Ctx) error
	Speech(ctx *fiber.Ctx) error
	Share(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
	speechService  service.ISpeechService
	streamTimeout  time.Duration
}

const defaultStreamTimeout = 5 * time.Minute

func NewChatbotController(chatbotService service.IChatbotService, speechService service.ISpeechService, streamTimeout time.Duration) IChatbotController {
	if streamTimeout <= 0 {
		streamTimeout = defaultStreamTimeout
	}
	return &chatbotController{
		chatbotService: chatbotService,
		speechService:  speechService,
		streamTimeout:  streamTimeout,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/chat/v1/sessions", jwtMiddleware)
	h.Post("", c.CreateSession)
	h.Get(":id", c.GetSession)
	h.Delete(":id", c.DeleteSession)
	h.Put(":id/mode", c.SetMode)
	h.Get(":id/messages", c.GetHistory)
	h.Post(":id/messages", c.SendChat)
	h.Post(":id/messages/:messageId/suggestions/:index", c.AskSuggestion)
	h.Get(":id/messages/:messageId/speech", c.Speech)
	h.Get(":id/messages/:messageId/share", c.Share)
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.CreateSession(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetSession(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.chatbotService.DeleteSession(ctx.UserContext(), ctx.Params("id")); err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *chatbotController) SetMode(ctx *fiber.Ctx) error {
	var req dto.SetModeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SetMode(ctx.UserContext(), ctx.Params("id"), &req)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set mode", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.chatbotService.GetHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

// SendChat streams the reply as server-sent events: one "snapshot" event per
// chunk, then "done" with the finished turn. ?stream=false answers with the
// finished turn as plain JSON instead.
// @Router /api/chat/v1/sessions/{id}/messages [post]
func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionID := utils.CopyString(ctx.Params("id"))
	if _, err := c.chatbotService.GetSession(ctx.UserContext(), sessionID); err != nil {
		return httpError(err)
	}

	return c.respond(ctx, func(genCtx context.Context, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error) {
		return c.chatbotService.SendChat(genCtx, sessionID, req.Question, onUpdate)
	})
}

// AskSuggestion sends one of the suggested follow-up questions of a reply.
// @Router /api/chat/v1/sessions/{id}/messages/{messageId}/suggestions/{index} [post]
func (c *chatbotController) AskSuggestion(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "index must be a number")
	}
	sessionID := utils.CopyString(ctx.Params("id"))
	messageID := utils.CopyString(ctx.Params("messageId"))
	if _, err := c.chatbotService.GetSession(ctx.UserContext(), sessionID); err != nil {
		return httpError(err)
	}

	return c.respond(ctx, func(genCtx context.Context, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error) {
		return c.chatbotService.AskSuggestion(genCtx, sessionID, messageID, index, onUpdate)
	})
}

// Speech returns the reply read aloud as WAV, or as base64 PCM with
// ?format=json.
func (c *chatbotController) Speech(ctx *fiber.Ctx) error {
	messageID := ctx.Params("messageId")
	audio, err := c.speechService.Speak(ctx.UserContext(), ctx.Params("id"), messageID)
	if err != nil {
		return httpError(err)
	}

	if ctx.Query("format") == "json" {
		peak, err := audio.Peak()
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return ctx.JSON(serverutils.SuccessResponse("Success get speech", &dto.SpeechResponse{
			MessageId:  messageID,
			SampleRate: audio.SampleRate,
			Channels:   audio.Channels,
			Duration:   audio.Duration(),
			Peak:       peak,
			Audio:      audio.Base64(),
		}))
	}

	ctx.Set(fiber.HeaderContentType, "audio/wav")
	return ctx.Send(speech.EncodeWAV(audio))
}

func (c *chatbotController) Share(ctx *fiber.Ctx) error {
	withHTML := ctx.Query("format") == "html"
	res, err := c.chatbotService.Share(ctx.UserContext(), ctx.Params("id"), ctx.Params("messageId"), withHTML)
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success share message", res))
}

type turnFunc func(ctx context.Context, onUpdate func(dto.StreamSnapshot) error) (*dto.ChatTurnResponse, error)

func (c *chatbotController) respond(ctx *fiber.Ctx, run turnFunc) error {
	// Generation is detached from the request; a departed client still
	// leaves a finalized reply in history.
	parent := context.WithoutCancel(ctx.UserContext())
	timeout := c.streamTimeout

	if !ctx.QueryBool("stream", true) {
		genCtx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		res, err := run(genCtx, nil)
		if err != nil {
			return httpError(err)
		}
		return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		genCtx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		res, err := run(genCtx, func(s dto.StreamSnapshot) error {
			return writeEvent(w, "snapshot", s)
		})
		if err != nil {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(httpError(err), &fe) {
				code = fe.Code
			}
			_ = writeEvent(w, "error", serverutils.ErrorResponse(code, err.Error()))
			return
		}
		_ = writeEvent(w, "done", res)
	}))
	return nil
}

func writeEvent(w *bufio.Writer, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	return w.Flush()
}
