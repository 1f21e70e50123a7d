package controller

import (
	"errors"

	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/internal/service"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IQuestionController interface {
	RegisterRoutes(r fiber.Router, authMW fiber.Handler)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Tags(ctx *fiber.Ctx) error
}

type questionController struct {
	service service.IQuestionService
}

func NewQuestionController(service service.IQuestionService) IQuestionController {
	return &questionController{service: service}
}

func (c *questionController) RegisterRoutes(r fiber.Router, authMW fiber.Handler) {
	h := r.Group("/questions", authMW)
	h.Post("/", c.Submit)
	h.Get("/", c.List)
	h.Get("/tags", c.Tags)
}

func (c *questionController) Submit(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)

	res, err := c.service.Submit(ctx.Context(), sess)
	if err != nil {
		if isValidationError(err) {
			return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
		}
		return serverutils.Fail(ctx, fiber.StatusInternalServerError, "Failed to save question")
	}
	return serverutils.OK(ctx, "Question added successfully!", res)
}

func (c *questionController) List(ctx *fiber.Ctx) error {
	return serverutils.OK(ctx, "Questions", c.service.List(ctx.Context()))
}

func (c *questionController) Tags(ctx *fiber.Ctx) error {
	return serverutils.OK(ctx, "Tags", c.service.Tags(ctx.Context()))
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrQuestionRequired) ||
		errors.Is(err, service.ErrAgentNameRequired) ||
		errors.Is(err, service.ErrAnswerRequired) ||
		errors.Is(err, service.ErrReferenceRequired)
}
