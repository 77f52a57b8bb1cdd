package controller

import (
	"nutrilokal-be/internal/dto"
	"nutrilokal-be/internal/pkg/apperror"
	"nutrilokal-be/internal/pkg/serverutils"
	"nutrilokal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INutritionController interface {
	RegisterRoutes(r fiber.Router)
	CalculateBMI(ctx *fiber.Ctx) error
}

type nutritionController struct {
	service service.INutritionService
}

func NewNutritionController(service service.INutritionService) INutritionController {
	return &nutritionController{service: service}
}

func (c *nutritionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/nutrition/v1")
	h.Post("/bmi", c.CalculateBMI)
}

func (c *nutritionController) CalculateBMI(ctx *fiber.Ctx) error {
	var req dto.CalculateBMIRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CalculateBMI(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success calculate BMI", res))
}
