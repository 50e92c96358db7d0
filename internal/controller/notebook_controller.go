package controller

import (
	"fmt"
	"net/url"
	"strconv"

	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INotebookController interface {
	RegisterRoutes(r fiber.Router, csrf fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Revisions(ctx *fiber.Ctx) error
	New(ctx *fiber.Ctx) error
	TryIt(ctx *fiber.Ctx) error
	Fork(ctx *fiber.Ctx) error
}

type notebookController struct {
	service service.INotebookService
}

func NewNotebookController(service service.INotebookService) INotebookController {
	return &notebookController{service: service}
}

func (c *notebookController) RegisterRoutes(r fiber.Router, csrf fiber.Handler) {
	// Public read views carry the CSRF cookie so the editor can save
	// later; the eval frame route never goes through this controller.
	r.Get("/notebooks/:id", serverutils.OptionalJwtMiddleware, csrf, c.Show)
	r.Get("/notebooks/:id/revisions", serverutils.OptionalJwtMiddleware, csrf, c.Revisions)
	r.Get("/new", serverutils.OptionalJwtMiddleware, csrf, c.New)
	r.Get("/try-it", serverutils.OptionalJwtMiddleware, csrf, c.TryIt)

	api := r.Group("/api/v1")
	api.Post("/revisions/:id/fork", serverutils.JwtMiddleware, c.Fork)
}

func parseNotebookId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, serverutils.NewNotFound("notebook", "id=%s", ctx.Params("id"))
	}
	return id, nil
}

func (c *notebookController) Show(ctx *fiber.Ctx) error {
	id, err := parseNotebookId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Detail(ctx.Context(), currentUser(ctx), id, ctx.Query("revision"))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *notebookController) Revisions(ctx *fiber.Ctx) error {
	id, err := parseNotebookId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Revisions(ctx.Context(), currentUser(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// iomdParams forwards user-supplied content across a redirect, url-encoded.
func iomdParams(iomd string) string {
	if iomd == "" {
		return ""
	}
	return "?iomd=" + url.QueryEscape(iomd)
}

func (c *notebookController) New(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	iomd := ctx.Query("iomd")

	if !user.Authenticated {
		return ctx.Redirect("/try-it"+iomdParams(iomd), fiber.StatusFound)
	}

	notebook, err := c.service.Create(ctx.Context(), user, iomd)
	if err != nil {
		return err
	}
	return ctx.Redirect(fmt.Sprintf("/notebooks/%d", notebook.Id), fiber.StatusFound)
}

func (c *notebookController) TryIt(ctx *fiber.Ctx) error {
	user := currentUser(ctx)
	iomd := ctx.Query("iomd")

	if user.Authenticated {
		return ctx.Redirect("/new"+iomdParams(iomd), fiber.StatusFound)
	}

	return ctx.JSON(c.service.TryIt(user, iomd))
}

func (c *notebookController) Fork(ctx *fiber.Ctx) error {
	revisionId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("revision", "id=%s", ctx.Params("id"))
	}

	notebook, err := c.service.Fork(ctx.Context(), currentUser(ctx), revisionId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success fork notebook", fiber.Map{
		"notebook_id": notebook.Id,
	}))
}
