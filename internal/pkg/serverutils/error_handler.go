package serverutils

import (
	"errors"
	"strings"

	"nutrilokal-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by controllers into the JSON envelope.
// Storage and assistant failures get a short generic notice; internals are not leaked.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := ClassifyError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// FiberErrorHandler is installed as fiber.Config.ErrorHandler for errors raised outside the middleware chain.
func FiberErrorHandler(ctx *fiber.Ctx, err error) error {
	code, message := ClassifyError(err)
	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

func ClassifyError(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, strings.TrimPrefix(err.Error(), apperror.ErrValidation.Error()+": ")
	case errors.Is(err, apperror.ErrSessionNotFound):
		return fiber.StatusNotFound, "Percakapan tidak ditemukan"
	case errors.Is(err, apperror.ErrUpstreamFailure):
		return fiber.StatusServiceUnavailable, "Gagal mendapatkan respons. Silakan coba lagi."
	case errors.Is(err, apperror.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, "Terjadi kesalahan saat memuat data chat."
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
