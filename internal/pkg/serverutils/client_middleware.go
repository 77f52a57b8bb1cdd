package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

const ClientIdHeader = "X-Client-Id"

// ClientIdMiddleware exposes the browser tab identity used for the conversation cursor.
// Requests without the header get an empty id and simply have no cursor.
func ClientIdMiddleware(ctx *fiber.Ctx) error {
	ctx.Locals("client_id", ctx.Get(ClientIdHeader))
	return ctx.Next()
}

func ClientId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals("client_id").(string)
	return id
}
