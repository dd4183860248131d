package dbhelper

import (
	"github.com/lib/pq"

	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/models"
)

func GetProductsByIDs(ids []int64) (map[int64]models.Product, error) {
	rows, err := database.FoodCart.Query(`
		SELECT id, name, category_id, price, description, special, created_at
		FROM products
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[int64]models.Product)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description, &p.Special, &p.CreatedAt); err != nil {
			return nil, err
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

// ListSellableProducts returns products that at least one restaurant
// currently offers, with category data attached.
func ListSellableProducts() ([]models.Product, error) {
	rows, err := database.FoodCart.Query(`
		SELECT DISTINCT p.id, p.name, p.category_id, p.price, p.description, p.special, p.created_at,
			c.id, c.name
		FROM products p
		JOIN menu_items m ON m.product_id = p.id AND m.available = TRUE
		LEFT JOIN product_categories c ON c.id = p.category_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var categoryID *int64
		var categoryName *string
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &p.Description, &p.Special, &p.CreatedAt,
			&categoryID, &categoryName); err != nil {
			return nil, err
		}
		if categoryID != nil && categoryName != nil {
			p.Category = &models.ProductCategory{ID: *categoryID, Name: *categoryName}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func CreateProduct(p *models.Product) error {
	return database.FoodCart.QueryRow(`
		INSERT INTO products (name, category_id, price, description, special)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		p.Name, p.CategoryID, p.Price, p.Description, p.Special).
		Scan(&p.ID, &p.CreatedAt)
}
