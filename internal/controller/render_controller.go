package controller

import (
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	EvalFrame(ctx *fiber.Ctx) error
}

type renderController struct {
	service service.IRenderService
}

func NewRenderController(service service.IRenderService) IRenderController {
	return &renderController{service: service}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	// No identity, no CSRF cookie: the sandboxed frame must stay free of
	// host credentials.
	r.Get(serverutils.EvalFramePath, c.EvalFrame)
}

func (c *renderController) EvalFrame(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(c.service.EvalFramePage())
}
