package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/nqvinh-dev/minishop/internal/helper"
)

// AuthMiddleware gates a route on a valid bearer access token and puts
// the decoded claims into the request context.
func AuthMiddleware(auth helper.TokenAuth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get("Authorization"))

		claims, err := auth.ParseAccessToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		ctx.Locals("accountID", claims.ID)
		ctx.Locals("claims", claims)
		return ctx.Next()
	}
}
