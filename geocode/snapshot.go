package geocode

import (
	"context"

	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/models"
)

// Snapshot answers coordinate lookups from one bulk read of the cache
// table, so a listing page costs a single SELECT instead of one per
// address. Addresses the snapshot has never seen fall through to the
// regular cache path and get geocoded there.
type Snapshot struct {
	cache   *Cache
	entries map[string]models.Coordinate
}

func NewSnapshot(cache *Cache) (*Snapshot, error) {
	coords, err := dbhelper.ListCoordinates()
	if err != nil {
		return nil, err
	}

	entries := make(map[string]models.Coordinate, len(coords))
	for _, coord := range coords {
		entries[coord.Address] = coord
	}
	return &Snapshot{cache: cache, entries: entries}, nil
}

// GetOrFetch resolves the address from the snapshot when present,
// honoring cached "no match" entries the same way the cache does.
func (s *Snapshot) GetOrFetch(ctx context.Context, address string) (models.Point, error) {
	coord, ok := s.entries[address]
	if !ok {
		return s.cache.GetOrFetch(ctx, address)
	}
	if !coord.Resolved() {
		return models.Point{}, ErrNotFound
	}
	return coord.Point(), nil
}
