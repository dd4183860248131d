// Package ranking decides which restaurants can fulfill an order and
// sorts them by distance to the delivery address.
package ranking

import "github.com/foodcart/backoffice/models"

// MenuIndex holds, per restaurant, the set of product ids currently
// marked available for sale.
type MenuIndex struct {
	menus map[int64]map[int64]bool
}

// NewMenuIndex builds the index from menu item rows. Rows flagged
// unavailable are ignored even if present.
func NewMenuIndex(items []models.MenuItem) *MenuIndex {
	menus := make(map[int64]map[int64]bool)
	for _, item := range items {
		if !item.Available {
			continue
		}
		if menus[item.RestaurantID] == nil {
			menus[item.RestaurantID] = make(map[int64]bool)
		}
		menus[item.RestaurantID][item.ProductID] = true
	}
	return &MenuIndex{menus: menus}
}

// AvailableProducts returns the sellable product set for a restaurant.
func (ix *MenuIndex) AvailableProducts(restaurantID int64) map[int64]bool {
	return ix.menus[restaurantID]
}

// Covers reports whether the restaurant's available set is a superset
// of the given product set.
func (ix *MenuIndex) Covers(restaurantID int64, products map[int64]bool) bool {
	menu := ix.menus[restaurantID]
	if len(menu) < len(products) {
		return false
	}
	for productID := range products {
		if !menu[productID] {
			return false
		}
	}
	return true
}
