package catalog

import (
	"sort"

	"campusmarket/internal/domain"
)

// Sort keys accepted by the listing views.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// SortBy orders products in place by the given key. The sort is stable:
// equal keys keep their relative input order between renders.
func SortBy(products []domain.Product, key string) {
	switch key {
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.Before(products[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}

// ValidSortKey reports whether key is one of the accepted sort options.
func ValidSortKey(key string) bool {
	switch key {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}
