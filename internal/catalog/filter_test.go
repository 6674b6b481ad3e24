package catalog

import (
	"testing"
	"time"

	"campusmarket/internal/domain"
)

func TestFilterEmptyDescriptorIsIdentity(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Price: 10}, {ID: "2", Price: 20}, {ID: "3", Price: 30},
	}
	got := Filter(products, domain.Filters{})
	if len(got) != 3 {
		t.Fatalf("empty filters must keep every product, got %d", len(got))
	}
	for i := range products {
		if got[i].ID != products[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterConjunction(t *testing.T) {
	now := time.Now()
	products := []domain.Product{
		{ID: "1", Price: 50000, Condition: "new", CategoryID: 2, CreatedAt: now},
		{ID: "2", Price: 150000, Condition: "new", CategoryID: 2, CreatedAt: now},
		{ID: "3", Price: 50000, Condition: "used", CategoryID: 2, CreatedAt: now},
		{ID: "4", Price: 50000, Condition: "new", CategoryID: 5, CreatedAt: now},
	}
	got := Filter(products, domain.Filters{CategoryID: 2, PriceMax: 100000, Condition: "new"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("AND semantics: want only product 1, got %+v", got)
	}
}

func TestFilterPriceBoundsInclusive(t *testing.T) {
	products := []domain.Product{
		{ID: "1", Price: 100}, {ID: "2", Price: 200}, {ID: "3", Price: 300},
	}
	got := Filter(products, domain.Filters{PriceMin: 100, PriceMax: 200})
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("bounds must be inclusive, got %+v", got)
	}
}

func TestFilterDateWindows(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "hours", CreatedAt: now.Add(-5 * time.Hour)},
		{ID: "days3", CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{ID: "days20", CreatedAt: now.Add(-20 * 24 * time.Hour)},
		{ID: "days40", CreatedAt: now.Add(-40 * 24 * time.Hour)},
	}

	cases := []struct {
		window string
		want   []string
	}{
		{"today", []string{"hours"}},
		{"week", []string{"hours", "days3"}},
		{"month", []string{"hours", "days3", "days20"}},
	}
	for _, tc := range cases {
		got := filterAt(products, domain.Filters{DatePosted: tc.window}, now)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: want %d products, got %d", tc.window, len(tc.want), len(got))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("%s: want %q at %d, got %q", tc.window, id, i, got[i].ID)
			}
		}
	}
}

// 12-item fixture where 5 items are new and at or under 100000: the filtered
// result is exactly those 5, in original relative order.
func TestFilterNewUnderPriceScenario(t *testing.T) {
	now := time.Now()
	mk := func(id, cond string, price float64) domain.Product {
		return domain.Product{ID: id, Condition: cond, Price: price, CreatedAt: now}
	}
	products := []domain.Product{
		mk("1", "new", 50000),
		mk("2", "used", 30000),
		mk("3", "new", 120000),
		mk("4", "new", 99999),
		mk("5", "used", 80000),
		mk("6", "new", 100000),
		mk("7", "used", 150000),
		mk("8", "new", 10000),
		mk("9", "used", 100000),
		mk("10", "new", 200000),
		mk("11", "new", 75000),
		mk("12", "used", 60000),
	}
	got := Filter(products, domain.Filters{Condition: "new", PriceMax: 100000})
	want := []string{"1", "4", "6", "8", "11"}
	if len(got) != len(want) {
		t.Fatalf("want %d products, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: want %q, got %q", i, id, got[i].ID)
		}
	}
}
