package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nqvinh-dev/minishop/internal/api/rest/middleware"
	"github.com/nqvinh-dev/minishop/internal/dto"
	"github.com/nqvinh-dev/minishop/internal/helper"
	"github.com/nqvinh-dev/minishop/internal/helper/utils"
	"github.com/nqvinh-dev/minishop/internal/services"
)

type AccountHandler struct {
	svc  services.AccountService
	auth helper.TokenAuth
}

func NewAccountHandler(svc services.AccountService, auth helper.TokenAuth) *AccountHandler {
	return &AccountHandler{svc: svc, auth: auth}
}

func (h *AccountHandler) SetupRoutes(app *fiber.App) {
	authGate := middleware.AuthMiddleware(h.auth)

	user := app.Group("/v1/user")
	user.Post("/register", h.Register)
	user.Post("/verify-otp", h.VerifyOtp)
	user.Post("/resend-otp", h.ResendOtp)
	user.Get("/profile", authGate, h.GetProfile)
	user.Get("/display-profile", authGate, h.DisplayProfile)

	app.Post("/api/token", h.Login)
}

func (h *AccountHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.Register(requestBody); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "User registered. OTP sent to email.")
}

func (h *AccountHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	tokens, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Login successful", fiber.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

func (h *AccountHandler) VerifyOtp(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyOtpRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "email and otp are required")
	}

	if err := h.svc.VerifyOtp(requestBody); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "OTP verified. Account activated.")
}

func (h *AccountHandler) ResendOtp(ctx *fiber.Ctx) error {
	var requestBody dto.ResendOtpRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseMessage(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.svc.ResendOtp(requestBody.Email); err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseMessage(ctx, fiber.StatusOK, "OTP resent. Please check your email.")
}

func (h *AccountHandler) GetProfile(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals("claims").(dto.AccessClaims)
	if !ok {
		return utils.ResponseMessage(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.svc.GetProfile(claims.ID)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Get user profile successfully", fiber.Map{
		"profile": profile,
	})
}

func (h *AccountHandler) DisplayProfile(ctx *fiber.Ctx) error {
	claims, ok := ctx.Locals("claims").(dto.AccessClaims)
	if !ok {
		return utils.ResponseMessage(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	fullName, err := h.svc.DisplayProfile(claims)
	if err != nil {
		return utils.ResponseError(ctx, err)
	}
	return utils.ResponseData(ctx, fiber.StatusOK, "Get user profile successfully", fiber.Map{
		"profile": fullName,
	})
}
