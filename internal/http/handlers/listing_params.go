package handlers

import (
	"html/template"
	"net/url"
	"strconv"

	"campusmarket/internal/catalog"
	"campusmarket/internal/domain"
	applog "campusmarket/internal/log"
	"campusmarket/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// filtersFromQuery builds the client-side filter descriptor from query
// parameters. Bad values are dropped (and logged), not errored: a listing
// with a mangled filter still renders.
func filtersFromQuery(c *fiber.Ctx) domain.Filters {
	var f domain.Filters
	if raw := c.Query("categoryId"); raw != "" {
		if id, ok := validate.ProductID(raw); ok {
			f.CategoryID = id
		} else {
			applog.Security(c, "validation.fail", map[string]any{"field": "categoryId"})
		}
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, ok := validate.Price(raw); ok {
			f.PriceMin = v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, ok := validate.Price(raw); ok {
			f.PriceMax = v
		}
	}
	if raw := c.Query("condition"); raw != "" {
		if v, ok := validate.Condition(raw); ok {
			f.Condition = v
		} else {
			applog.Security(c, "validation.fail", map[string]any{"field": "condition"})
		}
	}
	if raw := c.Query("datePosted"); raw != "" {
		if v, ok := validate.DatePosted(raw); ok {
			f.DatePosted = v
		}
	}
	return f
}

// sortFromQuery returns the requested sort key, defaulting to newest.
func sortFromQuery(c *fiber.Ctx) string {
	if key := c.Query("sort"); catalog.ValidSortKey(key) {
		return key
	}
	return catalog.SortNewest
}

// pageQuery serializes the free-text query, active filters and sort key so
// pagination links carry them; paging must never widen a filtered listing.
// Callers append their own page parameter.
func pageQuery(q string, f domain.Filters, sortKey string) template.URL {
	v := url.Values{}
	if q != "" {
		v.Set("query", q)
	}
	if f.CategoryID != 0 {
		v.Set("categoryId", strconv.Itoa(f.CategoryID))
	}
	if f.PriceMin != 0 {
		v.Set("minPrice", strconv.FormatFloat(f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax != 0 {
		v.Set("maxPrice", strconv.FormatFloat(f.PriceMax, 'f', -1, 64))
	}
	if f.Condition != "" {
		v.Set("condition", f.Condition)
	}
	if f.DatePosted != "" {
		v.Set("datePosted", f.DatePosted)
	}
	v.Set("sort", sortKey)
	// url.Values.Encode escapes every value; the string is a safe query
	// fragment, so skip the template escaper that would mangle & and =.
	return template.URL(v.Encode())
}

// pageFromQuery returns the 1-based page, resetting to 1 whenever the
// request changes filters or sort (the form marks that with reset=1). Stale
// page numbers over a shorter filtered list are the defect this avoids.
func pageFromQuery(c *fiber.Ctx) int {
	if c.Query("reset") == "1" {
		return 1
	}
	return validate.PageNumber(c.Query("page"))
}
