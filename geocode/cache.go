package geocode

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/models"
)

// Geocoder is what the cache needs from a provider client.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Point, error)
}

// Cache fronts the provider with the coordinates table. Each distinct
// address is geocoded at most once; the stored answer (including "no
// match") is reused forever after.
type Cache struct {
	client Geocoder
}

func NewCache(client Geocoder) *Cache {
	return &Cache{client: client}
}

// GetOrFetch returns coordinates for the address, consulting the cache
// before the provider. A fresh result is persisted whether or not the
// provider found a match; a provider failure is returned uncached so a
// later call can try again.
func (c *Cache) GetOrFetch(ctx context.Context, address string) (models.Point, error) {
	coord, err := dbhelper.GetCoordinate(address)
	switch {
	case err == nil:
		if !coord.Resolved() {
			return models.Point{}, ErrNotFound
		}
		return coord.Point(), nil
	case !errors.Is(err, sql.ErrNoRows):
		return models.Point{}, err
	}

	point, geoErr := c.client.Geocode(ctx, address)
	switch {
	case geoErr == nil:
		c.store(address, &point)
		return point, nil
	case errors.Is(geoErr, ErrNotFound):
		c.store(address, nil)
		return models.Point{}, ErrNotFound
	default:
		return models.Point{}, geoErr
	}
}

// store writes the cache row. Losing the insert race to a concurrent
// request is fine: the first writer's row stands, and both callers
// geocoded the same address to the same answer anyway.
func (c *Cache) store(address string, point *models.Point) {
	inserted, err := dbhelper.InsertCoordinate(address, point)
	if err != nil {
		logrus.WithError(err).WithField("address", address).Error("failed to cache coordinates")
		return
	}
	if !inserted {
		logrus.WithField("address", address).Debug("coordinates already cached by a concurrent request")
	}
}
