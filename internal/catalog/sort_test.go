package catalog

import (
	"testing"
	"time"

	"campusmarket/internal/domain"
)

func TestSortByKeys(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fixture := func() []domain.Product {
		return []domain.Product{
			{ID: "a", Price: 300, CreatedAt: base.Add(1 * time.Hour)},
			{ID: "b", Price: 100, CreatedAt: base.Add(3 * time.Hour)},
			{ID: "c", Price: 200, CreatedAt: base.Add(2 * time.Hour)},
		}
	}
	cases := []struct {
		key  string
		want []string
	}{
		{SortNewest, []string{"b", "c", "a"}},
		{SortOldest, []string{"a", "c", "b"}},
		{SortPriceLow, []string{"b", "c", "a"}},
		{SortPriceHigh, []string{"a", "c", "b"}},
	}
	for _, tc := range cases {
		products := fixture()
		SortBy(products, tc.key)
		for i, id := range tc.want {
			if products[i].ID != id {
				t.Fatalf("%s: want %q at %d, got %q", tc.key, id, i, products[i].ID)
			}
		}
	}
}

func TestSortStableOnEqualKeys(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		{ID: "first", Price: 100, CreatedAt: now},
		{ID: "second", Price: 100, CreatedAt: now},
		{ID: "third", Price: 100, CreatedAt: now},
	}
	SortBy(products, SortPriceLow)
	SortBy(products, SortPriceLow)
	for i, id := range []string{"first", "second", "third"} {
		if products[i].ID != id {
			t.Fatalf("equal prices must keep input order, got %q at %d", products[i].ID, i)
		}
	}
}

func TestSortUnknownKeyLeavesOrder(t *testing.T) {
	products := []domain.Product{{ID: "x"}, {ID: "y"}}
	SortBy(products, "bogus")
	if products[0].ID != "x" || products[1].ID != "y" {
		t.Fatal("unknown sort key must not reorder")
	}
	if ValidSortKey("bogus") {
		t.Fatal("bogus should not validate")
	}
	if !ValidSortKey(SortNewest) {
		t.Fatal("newest should validate")
	}
}
