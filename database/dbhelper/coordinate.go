package dbhelper

import (
	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/models"
)

func GetCoordinate(address string) (models.Coordinate, error) {
	var coord models.Coordinate
	err := database.FoodCart.QueryRow(`
		SELECT id, address, lat, lon, recorded_at
		FROM coordinates
		WHERE address = $1`, address).
		Scan(&coord.ID, &coord.Address, &coord.Lat, &coord.Lon, &coord.RecordedAt)
	return coord, err
}

// InsertCoordinate records a geocoding result for an address. point is
// nil when the provider had no match; the row is still written so the
// address is not asked about again. Concurrent inserts for the same
// address race benignly: the first writer wins and the rest are
// dropped by the uniqueness constraint.
func InsertCoordinate(address string, point *models.Point) (bool, error) {
	var lat, lon *float64
	if point != nil {
		lat, lon = &point.Lat, &point.Lon
	}

	result, err := database.FoodCart.Exec(`
		INSERT INTO coordinates (address, lat, lon)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO NOTHING`, address, lat, lon)
	if err != nil {
		return false, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func ListCoordinates() ([]models.Coordinate, error) {
	rows, err := database.FoodCart.Query(`
		SELECT id, address, lat, lon, recorded_at
		FROM coordinates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coords []models.Coordinate
	for rows.Next() {
		var coord models.Coordinate
		if err := rows.Scan(&coord.ID, &coord.Address, &coord.Lat, &coord.Lon, &coord.RecordedAt); err != nil {
			return nil, err
		}
		coords = append(coords, coord)
	}
	return coords, rows.Err()
}
