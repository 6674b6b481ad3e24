package handlers

import (
	"errors"

	"campusmarket/internal/api"
	"campusmarket/internal/catalog"
	applog "campusmarket/internal/log"
	"campusmarket/internal/services"

	"github.com/gofiber/fiber/v2"
)

const homePageSize = 20 // 4 rows x 5 columns

type HomeHandler struct {
	Listings *services.ListingService
	Backend  *api.Client
}

func (h *HomeHandler) Home(c *fiber.Ctx) error {
	sid := ensureSID(c)

	products, err := h.Listings.Load(c.Context(), sid, api.Filters{})
	if err != nil {
		applog.Error(c, "home.load.fail", err, nil)
		return render(c, "home", fiber.Map{
			"Products": nil, "Err": loadErrMessage(err),
		})
	}

	filters := filtersFromQuery(c)
	sortKey := sortFromQuery(c)
	filtered := catalog.Filter(products, filters)
	catalog.SortBy(filtered, sortKey)
	page := catalog.Paginate(filtered, homePageSize, pageFromQuery(c))

	categories, err := h.Backend.Categories(c.Context())
	if err != nil {
		// Category options are an enhancement; the listing renders without
		// them.
		applog.Error(c, "home.categories.fail", err, nil)
	}

	return render(c, "home", fiber.Map{
		"Products":   page.Items,
		"Page":       page,
		"Categories": categories,
		"Filters":    filters,
		"Sort":       sortKey,
		"PageQuery":  pageQuery("", filters, sortKey),
	})
}

// loadErrMessage distinguishes "can't reach server" from a backend
// rejection for the user-facing banner.
func loadErrMessage(err error) string {
	var unreach *api.UnreachableError
	if errors.As(err, &unreach) {
		return "No se puede conectar al servidor. Verifica que el backend esté corriendo."
	}
	return "Error al cargar los productos. Intenta de nuevo."
}
