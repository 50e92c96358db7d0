package controller

import (
	"strconv"

	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileSourceController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Trigger(ctx *fiber.Ctx) error
}

type fileSourceController struct {
	service service.IFileSourceService
}

func NewFileSourceController(service service.IFileSourceService) IFileSourceController {
	return &fileSourceController{service: service}
}

func (c *fileSourceController) RegisterRoutes(r fiber.Router) {
	api := r.Group("/api/v1")
	api.Use(serverutils.JwtMiddleware)
	api.Get("/notebooks/:id/file-sources", c.List)
	api.Post("/file-sources", c.Create)
	api.Delete("/file-sources/:id", c.Delete)
	api.Post("/file-sources/:id/trigger", c.Trigger)
}

func (c *fileSourceController) List(ctx *fiber.Ctx) error {
	notebookId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("notebook", "id=%s", ctx.Params("id"))
	}

	res, err := c.service.List(ctx.Context(), currentUser(ctx), notebookId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get file sources", res))
}

func (c *fileSourceController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFileSourceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidation("invalid request body: %s", err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), currentUser(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create file source", res))
}

func (c *fileSourceController) Delete(ctx *fiber.Ctx) error {
	sourceId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("file source", "id=%s", ctx.Params("id"))
	}

	if err := c.service.Delete(ctx.Context(), currentUser(ctx), sourceId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete file source", nil))
}

func (c *fileSourceController) Trigger(ctx *fiber.Ctx) error {
	sourceId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("file source", "id=%s", ctx.Params("id"))
	}

	if err := c.service.RequestRefresh(ctx.Context(), currentUser(ctx), sourceId); err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any]("Refresh requested", nil))
}
