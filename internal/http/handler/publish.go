package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kylewill/send-worker/internal/service"
)

type publishRequest struct {
	FileURL       string `json:"fileUrl"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	AllowDownload bool   `json:"allowDownload"`
	AllowPrint    bool   `json:"allowPrint"`
}

// PublishDocument accepts a publish request, pulls the source file and
// returns the public links. baseURL overrides host-derived links when set.
func PublishDocument(svc service.DocumentService, baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req publishRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		res, err := svc.Publish(c.UserContext(), service.PublishInput{
			FileURL:       req.FileURL,
			Title:         req.Title,
			Slug:          req.Slug,
			AllowDownload: req.AllowDownload,
			AllowPrint:    req.AllowPrint,
			BaseURL:       resolveBaseURL(c, baseURL),
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFileURLRequired), errors.Is(err, service.ErrTitleRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			case errors.Is(err, service.ErrUpstreamFetch):
				return writeError(c, fiber.StatusBadGateway, "UPSTREAM_FETCH_FAILED", "could not fetch source file")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// resolveBaseURL picks the absolute link prefix: configuration wins, then
// the forwarded proto (first hop) and request host.
func resolveBaseURL(c *fiber.Ctx, configured string) string {
	if configured != "" {
		return configured
	}
	scheme := c.Protocol()
	if fwd := c.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + c.Hostname()
}
