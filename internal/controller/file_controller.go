package controller

import (
	"io"

	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/internal/service"
	"github.com/af-Athameem/gtruth/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router, authMW fiber.Handler)
	List(ctx *fiber.Ctx) error
	Names(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}

type fileController struct {
	catalog service.ICatalogService
	files   service.IFileService
}

func NewFileController(catalog service.ICatalogService, files service.IFileService) IFileController {
	return &fileController{catalog: catalog, files: files}
}

func (c *fileController) RegisterRoutes(r fiber.Router, authMW fiber.Handler) {
	h := r.Group("/files", authMW)
	h.Get("/", c.List)
	h.Get("/names", c.Names)
	h.Post("/upload", c.Upload)
}

// List answers the merged file table: one row per name, sources
// accumulated.
func (c *fileController) List(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)
	entries := c.catalog.Entries(ctx.Context(), sess)
	return serverutils.OK(ctx, "Files", c.catalog.Merged(entries))
}

// Names answers the deduplicated selectable name list for the reference
// dropdowns.
func (c *fileController) Names(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)
	entries := c.catalog.Entries(ctx.Context(), sess)
	return serverutils.OK(ctx, "File names", c.catalog.Names(entries))
}

func (c *fileController) Upload(ctx *fiber.Ctx) error {
	sess := ctx.Locals(serverutils.SessionLocal).(*store.Session)

	mf, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "Invalid multipart form")
	}
	headers := mf.File["files"]
	if len(headers) == 0 {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "No files provided")
	}

	inputs := make([]service.UploadInput, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return serverutils.Fail(ctx, fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return serverutils.Fail(ctx, fiber.StatusBadRequest, "Failed to read uploaded file")
		}
		inputs = append(inputs, service.UploadInput{
			Name:    header.Filename,
			Content: content,
		})
	}

	summary := c.files.UploadAll(ctx.Context(), sess, inputs)

	message := "All files uploaded successfully."
	switch {
	case summary.Successful == 0:
		message = "All uploads failed. Please check your connection and try again."
	case summary.Failed > 0:
		message = "Some files failed to upload."
	}
	return serverutils.OK(ctx, message, summary)
}
