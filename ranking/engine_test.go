package ranking

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/foodcart/backoffice/geocode"
	"github.com/foodcart/backoffice/models"
)

// fakeResolver serves coordinates from a map and counts lookups.
type fakeResolver struct {
	points map[string]models.Point
	calls  map[string]int
}

func newFakeResolver(points map[string]models.Point) *fakeResolver {
	return &fakeResolver{points: points, calls: make(map[string]int)}
}

func (f *fakeResolver) GetOrFetch(_ context.Context, address string) (models.Point, error) {
	f.calls[address]++
	point, ok := f.points[address]
	if !ok {
		return models.Point{}, geocode.ErrNotFound
	}
	return point, nil
}

func orderWithProducts(address string, productIDs ...int64) models.Order {
	order := models.Order{ID: 1, Address: address}
	for _, id := range productIDs {
		order.Items = append(order.Items, models.OrderLineItem{ProductID: id, Quantity: 1})
	}
	return order
}

func menuItems(restaurantID int64, productIDs ...int64) []models.MenuItem {
	var items []models.MenuItem
	for _, id := range productIDs {
		items = append(items, models.MenuItem{RestaurantID: restaurantID, ProductID: id, Available: true})
	}
	return items
}

func TestMenuIndexCovers(t *testing.T) {
	items := append(menuItems(1, 10, 20, 30), menuItems(2, 10)...)
	items = append(items, models.MenuItem{RestaurantID: 2, ProductID: 20, Available: false})
	index := NewMenuIndex(items)

	tests := []struct {
		name         string
		restaurantID int64
		products     []int64
		want         bool
	}{
		{"full menu covers subset", 1, []int64{10, 20}, true},
		{"exact match covers", 1, []int64{10, 20, 30}, true},
		{"missing product fails", 2, []int64{10, 20}, false},
		{"unavailable item does not count", 2, []int64{20}, false},
		{"unknown restaurant fails", 99, []int64{10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := make(map[int64]bool)
			for _, id := range tt.products {
				products[id] = true
			}
			if got := index.Covers(tt.restaurantID, products); got != tt.want {
				t.Errorf("Covers(%d, %v) = %v, want %v", tt.restaurantID, tt.products, got, tt.want)
			}
		})
	}
}

func fptr(v float64) *float64 { return &v }

func TestEngineRank(t *testing.T) {
	// Order address in central Moscow; X is closer than Y.
	resolver := newFakeResolver(map[string]models.Point{
		"Tverskaya 1": {Lat: 55.7558, Lon: 37.6173},
		"X address":   {Lat: 55.76, Lon: 37.62},
		"Y address":   {Lat: 55.90, Lon: 37.70},
	})

	restaurants := []models.Restaurant{
		{ID: 1, Name: "X", Address: "X address"},
		{ID: 2, Name: "Y", Address: "Y address"},
	}
	index := NewMenuIndex(append(menuItems(1, 10, 20, 30), menuItems(2, 10)...))
	engine := NewEngine(resolver)

	t.Run("superset eligibility and distance order", func(t *testing.T) {
		order := orderWithProducts("Tverskaya 1", 10, 20)
		got := engine.Rank(context.Background(), order, restaurants, index)

		if len(got) != 1 || got[0].Name != "X" {
			t.Fatalf("Rank() = %+v, want only restaurant X", got)
		}
		if got[0].DistanceKM <= 0 || got[0].DistanceKM > 10 {
			t.Errorf("unexpected distance %v", got[0].DistanceKM)
		}
	})

	t.Run("single product ranks both, closest first", func(t *testing.T) {
		order := orderWithProducts("Tverskaya 1", 10)
		got := engine.Rank(context.Background(), order, restaurants, index)

		if len(got) != 2 {
			t.Fatalf("Rank() returned %d restaurants, want 2", len(got))
		}
		if got[0].Name != "X" || got[1].Name != "Y" {
			t.Errorf("Rank() order = [%s %s], want [X Y]", got[0].Name, got[1].Name)
		}
		if got[0].DistanceKM > got[1].DistanceKM {
			t.Errorf("distances not ascending: %v then %v", got[0].DistanceKM, got[1].DistanceKM)
		}
	})

	t.Run("unresolvable delivery address yields empty list", func(t *testing.T) {
		order := orderWithProducts("Unknown St 1", 10)
		got := engine.Rank(context.Background(), order, restaurants, index)
		if len(got) != 0 {
			t.Errorf("Rank() = %+v, want empty", got)
		}
	})

	t.Run("no eligible restaurants yields empty list", func(t *testing.T) {
		order := orderWithProducts("Tverskaya 1", 99)
		got := engine.Rank(context.Background(), order, restaurants, index)
		if len(got) != 0 {
			t.Errorf("Rank() = %+v, want empty", got)
		}
	})

	t.Run("order without line items yields empty list", func(t *testing.T) {
		order := orderWithProducts("Tverskaya 1")
		got := engine.Rank(context.Background(), order, restaurants, index)
		if len(got) != 0 {
			t.Errorf("Rank() = %+v, want empty", got)
		}
	})
}

func TestEngineRankTieBreakByName(t *testing.T) {
	point := models.Point{Lat: 55.76, Lon: 37.62}
	resolver := newFakeResolver(map[string]models.Point{
		"Tverskaya 1": {Lat: 55.7558, Lon: 37.6173},
	})

	// Both restaurants sit on the same coordinates via pre-set lat/lon.
	restaurants := []models.Restaurant{
		{ID: 2, Name: "Beta", Address: "b", Lat: fptr(point.Lat), Lon: fptr(point.Lon)},
		{ID: 1, Name: "Alpha", Address: "a", Lat: fptr(point.Lat), Lon: fptr(point.Lon)},
	}
	index := NewMenuIndex(append(menuItems(1, 10), menuItems(2, 10)...))
	engine := NewEngine(resolver)

	got := engine.Rank(context.Background(), orderWithProducts("Tverskaya 1", 10), restaurants, index)
	if len(got) != 2 {
		t.Fatalf("Rank() returned %d restaurants, want 2", len(got))
	}
	if got[0].Name != "Alpha" || got[1].Name != "Beta" {
		t.Errorf("tie not broken by name: got [%s %s]", got[0].Name, got[1].Name)
	}
	if got[0].DistanceKM != got[1].DistanceKM {
		t.Errorf("expected equal distances, got %v and %v", got[0].DistanceKM, got[1].DistanceKM)
	}
}

func TestEngineRankSkipsUnresolvableRestaurant(t *testing.T) {
	resolver := newFakeResolver(map[string]models.Point{
		"Tverskaya 1": {Lat: 55.7558, Lon: 37.6173},
		"X address":   {Lat: 55.76, Lon: 37.62},
	})

	restaurants := []models.Restaurant{
		{ID: 1, Name: "X", Address: "X address"},
		{ID: 2, Name: "Nowhere", Address: "no such place"},
	}
	index := NewMenuIndex(append(menuItems(1, 10), menuItems(2, 10)...))
	engine := NewEngine(resolver)

	got := engine.Rank(context.Background(), orderWithProducts("Tverskaya 1", 10), restaurants, index)
	want := []string{"X"}
	var names []string
	for _, entry := range got {
		names = append(names, entry.Name)
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Rank() names = %v, want %v", names, want)
	}
}

func TestEngineRankPrefersStoredCoordinates(t *testing.T) {
	resolver := newFakeResolver(map[string]models.Point{
		"Tverskaya 1": {Lat: 55.7558, Lon: 37.6173},
	})

	restaurants := []models.Restaurant{
		{ID: 1, Name: "X", Address: "X address", Lat: fptr(55.76), Lon: fptr(37.62)},
	}
	index := NewMenuIndex(menuItems(1, 10))
	engine := NewEngine(resolver)

	got := engine.Rank(context.Background(), orderWithProducts("Tverskaya 1", 10), restaurants, index)
	if len(got) != 1 {
		t.Fatalf("Rank() returned %d restaurants, want 1", len(got))
	}
	if resolver.calls["X address"] != 0 {
		t.Errorf("resolver called for an address with stored coordinates")
	}
}

// resolver errors other than not-found also degrade to an empty list.
func TestEngineRankResolverFailure(t *testing.T) {
	failing := resolverFunc(func(context.Context, string) (models.Point, error) {
		return models.Point{}, errors.New("geocoder down")
	})

	restaurants := []models.Restaurant{{ID: 1, Name: "X", Address: "X address"}}
	index := NewMenuIndex(menuItems(1, 10))
	engine := NewEngine(failing)

	got := engine.Rank(context.Background(), orderWithProducts("Tverskaya 1", 10), restaurants, index)
	if len(got) != 0 {
		t.Errorf("Rank() = %+v, want empty on resolver failure", got)
	}
}

type resolverFunc func(ctx context.Context, address string) (models.Point, error)

func (f resolverFunc) GetOrFetch(ctx context.Context, address string) (models.Point, error) {
	return f(ctx, address)
}
