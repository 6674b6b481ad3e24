package handlers

import (
	"campusmarket/internal/api"
	"campusmarket/internal/catalog"
	"campusmarket/internal/domain"
	applog "campusmarket/internal/log"
	"campusmarket/internal/services"
	"campusmarket/internal/session"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type MyProductsHandler struct {
	Listings *services.ListingService
	Backend  *api.Client
	Sessions *session.Service
}

func (h *MyProductsHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}

	products, err := h.Listings.LoadOwn(c.Context(), sid, u.ID)
	if err != nil {
		applog.Error(c, "myproducts.load.fail", err, nil)
		return render(c, "myproducts", fiber.Map{"Products": nil, "Err": loadErrMessage(err)})
	}
	catalog.SortBy(products, catalog.SortNewest)
	page := catalog.Paginate(products, searchPageSize, pageFromQuery(c))
	return render(c, "myproducts", fiber.Map{"Products": page.Items, "Page": page})
}

// Delete removes one of the user's listings and refetches via redirect.
func (h *MyProductsHandler) Delete(c *fiber.Ctx) error {
	sid := ensureSID(c)
	idStr := c.FormValue("productId")
	if _, ok := validate.ProductID(idStr); !ok {
		return c.Status(400).SendString("missing productId")
	}
	tok, err := h.Sessions.Token(sid)
	if err != nil || tok == "" {
		return c.Redirect("/login")
	}
	if err := h.Backend.DeleteProduct(c.Context(), tok, idStr); err != nil {
		applog.Error(c, "myproducts.delete.fail", err, map[string]any{"product": idStr})
		return c.Status(502).SendString("No se pudo eliminar el producto")
	}
	applog.Audit(c, "myproducts.delete", map[string]any{"product": idStr})
	return c.Redirect("/my-products")
}
