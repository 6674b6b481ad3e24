package catalog

import (
	"strconv"

	"campusmarket/internal/domain"
)

// Enrich sets IsFavorited by membership in the user's favorite-id set. The
// input order is untouched. With no favorites (anonymous session, or a
// failed favorite fetch) every item stays unfavorited.
func Enrich(products []domain.Product, favoriteIDs []int) {
	if len(favoriteIDs) == 0 {
		return
	}
	set := make(map[string]struct{}, len(favoriteIDs))
	for _, id := range favoriteIDs {
		set[strconv.Itoa(id)] = struct{}{}
	}
	for i := range products {
		_, ok := set[products[i].ID]
		products[i].IsFavorited = ok
	}
}
