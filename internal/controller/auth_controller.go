package controller

import (
	"errors"

	"github.com/af-Athameem/gtruth/internal/dto"
	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/internal/service"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authMW fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, authMW fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", authMW, c.Logout)
	h.Get("/session", authMW, c.Session)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Please enter both username and password.")
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		var rateErr *service.RateLimitError
		switch {
		case errors.As(err, &rateErr):
			return serverutils.Fail(ctx, fiber.StatusTooManyRequests, err.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			return serverutils.Fail(ctx, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrDocumentServiceAuth):
			return serverutils.Fail(ctx, fiber.StatusBadGateway, err.Error())
		default:
			return serverutils.Fail(ctx, fiber.StatusInternalServerError, err.Error())
		}
	}
	return serverutils.OK(ctx, "Login successful", res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)
	c.service.Logout(sess)
	return serverutils.OK(ctx, "Logged out successfully", nil)
}

func (c *authController) Session(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)
	return serverutils.OK(ctx, "Session active", dto.SessionResponse{
		Username:     sess.Username,
		SiteID:       sess.SiteID,
		LastActivity: sess.LastActivity,
	})
}
