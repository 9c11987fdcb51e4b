package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/service"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// CloudHandler exposes object storage endpoints.
type CloudHandler struct {
	storage *service.StorageService
}

// NewCloudHandler constructs handler.
func NewCloudHandler(storageService *service.StorageService) *CloudHandler {
	return &CloudHandler{storage: storageService}
}

// Upload handles POST /api/cloud/upload (multipart field "file").
func (h *CloudHandler) Upload(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "multipart field 'file' required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	file, err := h.storage.Upload(c.Context(), identity.SubjectID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":          file.ID,
			"file_name":   file.FileName,
			"storage_key": file.StorageKey,
			"size_bytes":  file.SizeBytes,
		},
	})
}

// Files handles GET /api/cloud/files.
func (h *CloudHandler) Files(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	files, err := h.storage.ListFiles(c.Context(), identity.SubjectID)
	if err != nil {
		return apperrors.MapError(err)
	}

	views := make([]fiber.Map, 0, len(files))
	for _, file := range files {
		views = append(views, fiber.Map{
			"id":         file.ID,
			"file_name":  file.FileName,
			"mime_type":  file.MimeType,
			"size_bytes": file.SizeBytes,
			"created_at": file.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": views})
}
