package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone,omitempty"`
	Lat          *float64  `db:"lat" json:"lat,omitempty"`
	Lon          *float64  `db:"lon" json:"lon,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Location returns pre-set coordinates if the restaurant has them.
func (r Restaurant) Location() (Point, bool) {
	if r.Lat == nil || r.Lon == nil {
		return Point{}, false
	}
	return Point{Lat: *r.Lat, Lon: *r.Lon}, true
}

type ProductCategory struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Product struct {
	ID          int64            `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	CategoryID  *int64           `db:"category_id" json:"-"`
	Category    *ProductCategory `db:"-" json:"category,omitempty"`
	Price       decimal.Decimal  `db:"price" json:"price"`
	Description string           `db:"description" json:"description,omitempty"`
	Special     bool             `db:"special" json:"special"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// MenuItem marks whether a product is currently sellable at a
// restaurant. At most one row per (restaurant, product) pair.
type MenuItem struct {
	ID           int64 `db:"id" json:"id"`
	RestaurantID int64 `db:"restaurant_id" json:"restaurant_id"`
	ProductID    int64 `db:"product_id" json:"product_id"`
	Available    bool  `db:"available" json:"available"`
}
