package handlers

import (
	applog "campusmarket/internal/log"
	"campusmarket/internal/session"

	"github.com/gofiber/fiber/v2"
)

// AttachUser hydrates the session user into locals when a token exists.
// Backend-down during hydration leaves the request anonymous; the token
// survives for the next one.
func AttachUser(sessions *session.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := sessions.Hydrate(c.Context(), sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

// RequireUser redirects anonymous sessions to the login form.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("user") == nil {
			applog.Security(c, "access.denied", nil)
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
