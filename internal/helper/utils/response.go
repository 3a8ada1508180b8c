package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nqvinh-dev/minishop/internal/apperr"
)

// ResponseMessage writes a plain {"message": ...} body.
func ResponseMessage(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{"message": msg})
}

// ResponseData writes a message plus extra payload fields.
func ResponseData(ctx *fiber.Ctx, status int, msg string, data fiber.Map) error {
	body := fiber.Map{"message": msg}
	for k, v := range data {
		body[k] = v
	}
	return ctx.Status(status).JSON(body)
}

// ResponseError maps a service error onto the status/message convention.
// Unknown errors are reported as a generic 500; the cause stays in the
// server logs.
func ResponseError(ctx *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	body := fiber.Map{"message": appErr.Message}
	if appErr.Kind == apperr.KindInvalidOtp {
		body["attempts"] = appErr.Attempts
	}
	return ctx.Status(appErr.Status()).JSON(body)
}
