package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kylewill/send-worker/internal/service"
)

// ServeFile streams the stored PDF for a document id. Download permission
// only switches the disposition; the bytes go out either way.
func ServeFile(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fs, err := svc.File(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
		if fs.Document.AllowDownload {
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fs.Document.Title+".pdf"))
		} else {
			c.Set(fiber.HeaderContentDisposition, "inline")
		}

		if fs.Size > 0 {
			return c.SendStream(fs.Content, int(fs.Size))
		}
		return c.SendStream(fs.Content)
	}
}
