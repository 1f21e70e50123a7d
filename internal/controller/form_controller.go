package controller

import (
	"strconv"

	"github.com/af-Athameem/gtruth/internal/dto"
	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/pkg/form"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/gofiber/fiber/v2"
)

// IFormController exposes the record-authoring form. Every mutation answers
// with the updated form state; out-of-bounds indexes are silent no-ops so a
// stale client simply re-renders the current state.
type IFormController interface {
	RegisterRoutes(r fiber.Router, authMW fiber.Handler)
}

type formController struct {
	forms *form.Manager
}

func NewFormController(forms *form.Manager) IFormController {
	return &formController{forms: forms}
}

func (c *formController) RegisterRoutes(r fiber.Router, authMW fiber.Handler) {
	h := r.Group("/form", authMW)
	h.Get("/", c.Get)
	h.Patch("/", c.Update)
	h.Post("/partial-answers", c.AddPartialAnswer)
	h.Delete("/partial-answers/:index", c.RemovePartialAnswer)
	h.Patch("/partial-answers/:index", c.UpdateAnswer)
	h.Post("/partial-answers/:index/references", c.AddReference)
	h.Delete("/partial-answers/:index/references/:ref", c.RemoveReference)
	h.Patch("/partial-answers/:index/references/:ref", c.UpdateReference)
}

func (c *formController) Get(ctx *fiber.Ctx) error {
	return serverutils.OK(ctx, "Form state", c.state(ctx))
}

func (c *formController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateFormRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	f := c.state(ctx)
	if req.Question != nil {
		c.forms.SetQuestion(f, *req.Question)
	}
	if req.AgentName != nil {
		c.forms.SetAgentName(f, *req.AgentName)
	}
	if req.Tags != nil {
		c.forms.SetTags(f, *req.Tags)
	}
	if req.NewTag != nil {
		c.forms.AddTag(f, *req.NewTag)
	}
	return serverutils.OK(ctx, "Form updated", f)
}

func (c *formController) AddPartialAnswer(ctx *fiber.Ctx) error {
	f := c.state(ctx)
	c.forms.AddPartialAnswer(f)
	return serverutils.OK(ctx, "Partial answer added", f)
}

func (c *formController) RemovePartialAnswer(ctx *fiber.Ctx) error {
	f := c.state(ctx)
	c.forms.RemovePartialAnswer(f, param(ctx, "index"))
	return serverutils.OK(ctx, "Partial answer removed", f)
}

func (c *formController) UpdateAnswer(ctx *fiber.Ctx) error {
	var req dto.UpdateAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	f := c.state(ctx)
	c.forms.SetAnswer(f, param(ctx, "index"), req.Answer)
	return serverutils.OK(ctx, "Answer updated", f)
}

func (c *formController) AddReference(ctx *fiber.Ctx) error {
	f := c.state(ctx)
	c.forms.AddReference(f, param(ctx, "index"))
	return serverutils.OK(ctx, "Reference added", f)
}

func (c *formController) RemoveReference(ctx *fiber.Ctx) error {
	f := c.state(ctx)
	c.forms.RemoveReference(f, param(ctx, "index"), param(ctx, "ref"))
	return serverutils.OK(ctx, "Reference removed", f)
}

func (c *formController) UpdateReference(ctx *fiber.Ctx) error {
	var req dto.UpdateReferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Invalid request body")
	}
	f := c.state(ctx)
	c.forms.SetReference(f, param(ctx, "index"), param(ctx, "ref"), req.Document, req.Pages)
	return serverutils.OK(ctx, "Reference updated", f)
}

// state returns the session's form, initializing one for older sessions
// that lost theirs.
func (c *formController) state(ctx *fiber.Ctx) *store.FormState {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)
	if sess.Form == nil {
		sess.Form = c.forms.Initialize()
	}
	return sess.Form
}

// param parses an index parameter, mapping garbage to -1 which every form
// operation treats as out of bounds.
func param(ctx *fiber.Ctx, name string) int {
	v, err := strconv.Atoi(ctx.Params(name))
	if err != nil {
		return -1
	}
	return v
}
