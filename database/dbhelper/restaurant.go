package dbhelper

import (
	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/models"
)

func ListRestaurants() ([]models.Restaurant, error) {
	rows, err := database.FoodCart.Query(`
		SELECT id, name, address, contact_phone, lat, lon, created_at
		FROM restaurants
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &r.ContactPhone, &r.Lat, &r.Lon, &r.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	return restaurants, rows.Err()
}

func CreateRestaurant(r *models.Restaurant) error {
	return database.FoodCart.QueryRow(`
		INSERT INTO restaurants (name, address, contact_phone, lat, lon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		r.Name, r.Address, r.ContactPhone, r.Lat, r.Lon).
		Scan(&r.ID, &r.CreatedAt)
}

// ListAvailableMenuItems returns every (restaurant, product) pair
// currently marked sellable; the availability index is built from it.
func ListAvailableMenuItems() ([]models.MenuItem, error) {
	rows, err := database.FoodCart.Query(`
		SELECT id, restaurant_id, product_id, available
		FROM menu_items
		WHERE available = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ProductID, &item.Available); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertMenuItem creates or flips the availability flag for one
// (restaurant, product) pair.
func UpsertMenuItem(item *models.MenuItem) error {
	return database.FoodCart.QueryRow(`
		INSERT INTO menu_items (restaurant_id, product_id, available)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id)
		DO UPDATE SET available = EXCLUDED.available
		RETURNING id`,
		item.RestaurantID, item.ProductID, item.Available).
		Scan(&item.ID)
}
