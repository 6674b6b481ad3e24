package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Inject the hydrated user if the session middleware resolved one
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if _, ok := data["CSRFToken"]; !ok {
		if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
			data["CSRFToken"] = tok
		} else {
			// Fall back to the cookie so forms never render an empty field
			data["CSRFToken"] = c.Cookies("csrf_")
		}
	}
	return c.Render(tmpl, data)
}
