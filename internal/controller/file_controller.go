package controller

import (
	"encoding/json"
	"io"
	"strconv"

	"iomd-notebook-be/internal/dto"
	"iomd-notebook-be/internal/pkg/serverutils"
	"iomd-notebook-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type fileController struct {
	service service.IFileService
}

func NewFileController(service service.IFileService) IFileController {
	return &fileController{service: service}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api/v1/files")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

// parseUpload unpacks the multipart body: a "metadata" JSON part naming the
// notebook and filename, and an optional "file" binary part. A nil content
// slice means no file part was sent.
func parseUpload(ctx *fiber.Ctx) (*dto.FileUploadMetadata, []byte, error) {
	var meta dto.FileUploadMetadata
	if err := json.Unmarshal([]byte(ctx.FormValue("metadata")), &meta); err != nil {
		return nil, nil, serverutils.NewValidation("invalid metadata part: %s", err.Error())
	}
	if err := serverutils.ValidateRequest(meta); err != nil {
		return nil, nil, err
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		return &meta, nil, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}
	return &meta, content, nil
}

func (c *fileController) Create(ctx *fiber.Ctx) error {
	meta, content, err := parseUpload(ctx)
	if err != nil {
		return err
	}
	if content == nil {
		return serverutils.NewValidation("missing file part")
	}

	res, err := c.service.Create(ctx.Context(), currentUser(ctx), meta, content)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *fileController) Update(ctx *fiber.Ctx) error {
	fileId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("file", "id=%s", ctx.Params("id"))
	}

	meta, content, err := parseUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), currentUser(ctx), fileId, meta, content)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *fileController) Delete(ctx *fiber.Ctx) error {
	fileId, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return serverutils.NewNotFound("file", "id=%s", ctx.Params("id"))
	}

	if err := c.service.Delete(ctx.Context(), currentUser(ctx), fileId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete file", nil))
}
