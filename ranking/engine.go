package ranking

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/models"
)

// Resolver turns an address into coordinates, geocoding lazily on
// first use. The geocode cache satisfies it.
type Resolver interface {
	GetOrFetch(ctx context.Context, address string) (models.Point, error)
}

// RankedRestaurant is one entry of the ranked list shown to managers.
type RankedRestaurant struct {
	Name       string  `json:"restaurant"`
	DistanceKM float64 `json:"distance_km"`
}

// Engine computes the ranked restaurant list for an order. It is
// read-only apart from the resolver's lazy cache population and safe
// to run concurrently with order intake.
type Engine struct {
	resolver Resolver
}

func NewEngine(resolver Resolver) *Engine {
	return &Engine{resolver: resolver}
}

// Rank returns restaurants able to supply every product in the order,
// closest first, names breaking distance ties. The list is empty when
// the order has no line items, when no restaurant covers it, or when
// the delivery address cannot be resolved; none of these are errors.
func (e *Engine) Rank(ctx context.Context, order models.Order, restaurants []models.Restaurant, index *MenuIndex) []RankedRestaurant {
	ranked := []RankedRestaurant{}

	products := order.ProductSet()
	if len(products) == 0 {
		return ranked
	}

	var eligible []models.Restaurant
	for _, r := range restaurants {
		if index.Covers(r.ID, products) {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return ranked
	}

	orderPoint, err := e.resolver.GetOrFetch(ctx, order.Address)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": order.ID,
			"address":  order.Address,
		}).Warn("delivery address has no coordinates, skipping ranking")
		return ranked
	}

	for _, r := range eligible {
		point, ok := e.restaurantPoint(ctx, r)
		if !ok {
			continue
		}
		ranked = append(ranked, RankedRestaurant{
			Name:       r.Name,
			DistanceKM: roundKM(DistanceKM(orderPoint, point)),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKM != ranked[j].DistanceKM {
			return ranked[i].DistanceKM < ranked[j].DistanceKM
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// restaurantPoint prefers coordinates stored on the restaurant row and
// falls back to resolving its address.
func (e *Engine) restaurantPoint(ctx context.Context, r models.Restaurant) (models.Point, bool) {
	if point, ok := r.Location(); ok {
		return point, true
	}
	point, err := e.resolver.GetOrFetch(ctx, r.Address)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"restaurant": r.Name,
			"address":    r.Address,
		}).Warn("restaurant address has no coordinates, excluded from ranking")
		return models.Point{}, false
	}
	return point, true
}
