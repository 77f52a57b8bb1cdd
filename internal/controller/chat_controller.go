package controller

import (
	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/serverutils"
	"nutrilokal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	ClearSessions(ctx *fiber.Ctx) error
	Welcome(ctx *fiber.Ctx) error
	OpenConversation(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	SendImage(ctx *fiber.Ctx) error
}

type chatController struct {
	sessions service.IChatSessionService
	chatbot  service.IChatbotService
}

func NewChatController(sessions service.IChatSessionService, chatbot service.IChatbotService) IChatController {
	return &chatController{
		sessions: sessions,
		chatbot:  chatbot,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.ClientIdMiddleware)

	h.Get("/sessions", c.ListSessions)
	h.Post("/sessions", c.CreateSession)
	h.Delete("/sessions", c.ClearSessions)
	h.Get("/sessions/:id", c.GetSession)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Get("/sessions/:id/messages", c.GetMessages)
	h.Post("/sessions/:id/messages", c.AppendMessage)

	h.Get("/welcome", c.Welcome)
	h.Get("/conversation/:id", c.OpenConversation)
	h.Post("/send", c.SendChat)
	h.Post("/send-image", c.SendImage)
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid chat session id")
	}
	return id, nil
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	res, err := c.sessions.ListSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chat sessions", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.sessions.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessions.GetSession(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return apperror.ErrSessionNotFound
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat session", res))
}

func (c *chatController) GetMessages(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessions.GetMessages(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat messages", res))
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AppendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessions.AppendMessage(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append chat message", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	deleted, err := c.sessions.DeleteSession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete chat session", &dto.DeleteSessionResponse{Deleted: deleted}))
}

func (c *chatController) ClearSessions(ctx *fiber.Ctx) error {
	if err := c.sessions.ClearSessions(ctx.Context()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear chat history", nil))
}

func (c *chatController) Welcome(ctx *fiber.Ctx) error {
	res, err := c.chatbot.Welcome(ctx.Context(), serverutils.ClientId(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get welcome message", res))
}

func (c *chatController) OpenConversation(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatbot.OpenConversation(ctx.Context(), serverutils.ClientId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open conversation", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbot.SendChat(ctx.Context(), serverutils.ClientId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) SendImage(ctx *fiber.Ctx) error {
	var req dto.SendImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbot.SendImage(ctx.Context(), serverutils.ClientId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send image", res))
}
