package catalog

import (
	"time"

	"campusmarket/internal/domain"
)

// Filter returns the products matching every set constraint (logical AND).
// An empty descriptor returns the input unchanged. Order is preserved.
func Filter(products []domain.Product, f domain.Filters) []domain.Product {
	return filterAt(products, f, time.Now())
}

// filterAt exists so the date-posted windows are testable against a fixed
// clock.
func filterAt(products []domain.Product, f domain.Filters, now time.Time) []domain.Product {
	if f.IsZero() {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f, now) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, f domain.Filters, now time.Time) bool {
	if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
		return false
	}
	if f.PriceMin != 0 && p.Price < f.PriceMin {
		return false
	}
	if f.PriceMax != 0 && p.Price > f.PriceMax {
		return false
	}
	if f.Condition != "" && p.Condition != f.Condition {
		return false
	}
	if f.DatePosted != "" && !withinWindow(p.CreatedAt, f.DatePosted, now) {
		return false
	}
	return true
}

// withinWindow applies fixed age cutoffs from "now", not calendar
// boundaries: today means posted within the last 24 hours.
func withinWindow(createdAt time.Time, window string, now time.Time) bool {
	age := now.Sub(createdAt)
	switch window {
	case "today":
		return age <= 24*time.Hour
	case "week":
		return age <= 7*24*time.Hour
	case "month":
		return age <= 30*24*time.Hour
	}
	return true
}
