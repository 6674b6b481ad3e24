package handlers

import (
	"campusmarket/internal/catalog"
	"campusmarket/internal/domain"
	applog "campusmarket/internal/log"
	"campusmarket/internal/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Listings *services.ListingService
}

// Dashboard shows the user's favorites next to their own listings. The
// favorite set loads first; the own-products annotation depends on it.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Redirect("/login")
	}

	favorites, err := h.Listings.LoadFavorites(c.Context(), sid)
	if err != nil {
		applog.Error(c, "dashboard.favorites.fail", err, nil)
		favorites = nil
	}

	own, err := h.Listings.LoadOwn(c.Context(), sid, u.ID)
	if err != nil {
		applog.Error(c, "dashboard.own.fail", err, nil)
		return render(c, "dashboard", fiber.Map{
			"Favorites": favorites, "Own": nil, "Err": loadErrMessage(err),
		})
	}
	catalog.SortBy(own, catalog.SortNewest)

	return render(c, "dashboard", fiber.Map{
		"Favorites": favorites,
		"Own":       own,
	})
}
