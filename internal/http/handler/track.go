package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kylewill/send-worker/internal/service"
)

type trackRequest struct {
	DocumentID string `json:"documentId"`
}

// TrackView records one view event from the client beacon. Client metadata
// comes from headers and is normalized before it reaches the service.
func TrackView(svc service.ViewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req trackRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		_, err := svc.Track(c.UserContext(), service.TrackInput{
			DocumentID: req.DocumentID,
			IPAddress:  clientIP(c),
			UserAgent:  userAgent(c),
			Referer:    c.Get(fiber.HeaderReferer),
		})
		if err != nil {
			if errors.Is(err, service.ErrDocumentIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// clientIP walks the proxy headers: CF-Connecting-IP first, then the first
// hop of X-Forwarded-For, then "unknown". The socket address is not used
// since behind the edge it only names the proxy.
func clientIP(c *fiber.Ctx) string {
	if ip := c.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	return "unknown"
}

func userAgent(c *fiber.Ctx) string {
	if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
		return ua
	}
	return "unknown"
}
