package handlers

import (
	"strings"

	"campusmarket/internal/api"
	"campusmarket/internal/catalog"
	"campusmarket/internal/log"
	"campusmarket/internal/services"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const searchPageSize = 12

type SearchHandler struct {
	Listings *services.ListingService
	Backend  *api.Client
}

// Search renders the search view. The free-text query is pushed to the
// backend; category/price/condition/date narrowing plus sort and pagination
// run client-side over the fetched set.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	sid := ensureSID(c)

	rawQ := c.Query("query")
	var q string
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		q, ok = validate.Q(rawQ)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "query", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
				"Q": "", "Products": nil, "Count": 0, "Err": "Ingresa una búsqueda válida",
			})
		}
	}

	products, err := h.Listings.Load(c.Context(), sid, api.Filters{Search: q})
	if err != nil {
		log.Error(c, "search.load.fail", err, nil)
		return render(c, "search", fiber.Map{
			"Q": q, "Products": nil, "Count": 0, "Err": loadErrMessage(err),
		})
	}

	filters := filtersFromQuery(c)
	sortKey := sortFromQuery(c)
	filtered := catalog.Filter(products, filters)
	catalog.SortBy(filtered, sortKey)
	page := catalog.Paginate(filtered, searchPageSize, pageFromQuery(c))

	categories, err := h.Backend.Categories(c.Context())
	if err != nil {
		log.Error(c, "search.categories.fail", err, nil)
	}

	return render(c, "search", fiber.Map{
		"Q":          q,
		"Products":   page.Items,
		"Count":      page.Total,
		"Page":       page,
		"Sort":       sortKey,
		"Filters":    filters,
		"Categories": categories,
		"PageQuery":  pageQuery(q, filters, sortKey),
	})
}
