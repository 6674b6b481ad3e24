package handlers

import (
	"net/url"

	"campusmarket/internal/api"
	"campusmarket/internal/log"
	"campusmarket/internal/services"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Listings *services.ListingService
	Backend  *api.Client
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	p, err := h.Listings.LoadOne(c.Context(), sid, id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

// Contact records the contact event and sends the buyer to the WhatsApp
// deep link. Recording is fire-and-forget: a failed record is logged and the
// redirect still happens.
func (h *ProductHandler) Contact(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Backend.RecordContact(c.Context(), id); err != nil {
		log.Error(c, "product.contact.record.fail", err, map[string]any{"product": id})
	} else {
		log.Audit(c, "product.contact", map[string]any{"product": id})
	}

	phone := c.FormValue("phone")
	text := c.FormValue("text")
	return c.Redirect("https://wa.me/" + url.PathEscape(phone) + "?text=" + url.QueryEscape(text))
}
