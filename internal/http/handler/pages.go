package handler

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kylewill/send-worker/internal/page"
	"github.com/kylewill/send-worker/internal/service"
)

// ViewerPage renders the public document viewer for a slug.
func ViewerPage(svc service.DocumentService, baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.BySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).Type("html").SendString(page.NotFound)
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		var buf bytes.Buffer
		err = page.RenderViewer(&buf, page.ViewerData{
			Title:         doc.Title,
			FileURL:       "/api/file/" + doc.ID,
			TrackURL:      "/api/track",
			DocumentID:    doc.ID,
			ViewURL:       resolveBaseURL(c, baseURL) + "/view/" + doc.Slug,
			AllowDownload: doc.AllowDownload,
			AllowPrint:    doc.AllowPrint,
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Type("html").Send(buf.Bytes())
	}
}

// StatsPage renders the view statistics page for a slug.
func StatsPage(docSvc service.DocumentService, viewSvc service.ViewService, baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := docSvc.BySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).Type("html").SendString(page.NotFound)
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		stats, err := viewSvc.StatsFor(c.UserContext(), doc.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		viewURL := resolveBaseURL(c, baseURL) + "/view/" + doc.Slug
		data := page.StatsDataFrom(doc, stats.Views, stats.Total, stats.Unique, viewURL, time.Now())

		var buf bytes.Buffer
		if err := page.RenderStats(&buf, data); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Type("html").Send(buf.Bytes())
	}
}
