package controller

import (
	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/serverutils"
	"nutrilokal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWhatsAppController interface {
	RegisterRoutes(r fiber.Router)
	ValidateSettings(ctx *fiber.Ctx) error
	TestConnection(ctx *fiber.Ctx) error
	ForwardLogs(ctx *fiber.Ctx) error
}

type whatsAppController struct {
	service service.IWhatsAppService
}

func NewWhatsAppController(service service.IWhatsAppService) IWhatsAppController {
	return &whatsAppController{service: service}
}

func (c *whatsAppController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/whatsapp/v1")
	h.Post("/validate", c.ValidateSettings)
	h.Post("/test", c.TestConnection)
	h.Get("/forward-logs", c.ForwardLogs)
}

func (c *whatsAppController) ValidateSettings(ctx *fiber.Ctx) error {
	var req dto.WhatsAppSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	res, err := c.service.ValidateSettings(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("WhatsApp settings are valid", res))
}

func (c *whatsAppController) TestConnection(ctx *fiber.Ctx) error {
	var req dto.TestWhatsAppConnectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.TestConnection(ctx.Context(), &req)
	if err != nil {
		return err
	}

	message := "WhatsApp connection succeeded"
	if !res.Connected {
		message = "WhatsApp connection failed"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}

func (c *whatsAppController) ForwardLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ForwardLogs(ctx.Context(), level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get forward logs", res))
}
