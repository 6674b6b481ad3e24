package handlers

import (
	"errors"

	"campusmarket/internal/catalog"
	applog "campusmarket/internal/log"
	"campusmarket/internal/services"
	"campusmarket/internal/session"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Favorites *services.FavoriteService
	Listings  *services.ListingService
}

// List renders the favorites view: the favorite set drives per-id product
// fetches, everything shown is favorited by construction.
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	sid := ensureSID(c)
	products, err := h.Listings.LoadFavorites(c.Context(), sid)
	if err != nil {
		if errors.Is(err, session.ErrAnonymous) {
			return c.Redirect("/login")
		}
		applog.Error(c, "favorites.load.fail", err, nil)
		return render(c, "favorites", fiber.Map{"Products": nil, "Err": loadErrMessage(err)})
	}
	catalog.SortBy(products, catalog.SortNewest)
	page := catalog.Paginate(products, searchPageSize, pageFromQuery(c))
	return render(c, "favorites", fiber.Map{"Products": page.Items, "Page": page})
}

// Toggle flips a favorite and bounces back to the referring view. Anonymous
// sessions are rejected before any backend request; a failed toggle leaves
// state as it was and reports.
func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}

	favorited, err := h.Favorites.Toggle(c.Context(), sid, id)
	if err != nil {
		if errors.Is(err, session.ErrAnonymous) {
			applog.Security(c, "favorites.toggle.anonymous", map[string]any{"product": id})
			return c.Redirect("/login")
		}
		applog.Error(c, "favorites.toggle.fail", err, map[string]any{"product": id})
		return c.Status(502).SendString("No se pudo actualizar el favorito")
	}

	applog.Audit(c, "favorites.toggle", map[string]any{"product": id, "favorited": favorited})
	back := c.Get("Referer")
	if back == "" {
		back = "/favorites"
	}
	return c.Redirect(back)
}
