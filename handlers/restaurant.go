package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/models"
	"github.com/foodcart/backoffice/utils"
)

func ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := dbhelper.ListRestaurants()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, restaurants)
}

// CreateResource is the admin write endpoint, dispatching on the
// ?type= query parameter like the rest of the back office.
func CreateResource(w http.ResponseWriter, r *http.Request) {
	resourceType := r.URL.Query().Get("type")
	if resourceType == "" {
		http.Error(w, "missing resource type", http.StatusBadRequest)
		return
	}

	switch resourceType {
	case "restaurant":
		createRestaurant(w, r)
	case "product":
		createProduct(w, r)
	case "menu":
		upsertMenuItem(w, r)
	default:
		http.Error(w, "invalid resource type", http.StatusBadRequest)
	}
}

func createRestaurant(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Name         string   `json:"name"`
		Address      string   `json:"address"`
		ContactPhone string   `json:"contact_phone"`
		Lat          *float64 `json:"lat"`
		Lon          *float64 `json:"lon"`
	}

	var in input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	restaurant := models.Restaurant{
		Name:         in.Name,
		Address:      in.Address,
		ContactPhone: in.ContactPhone,
		Lat:          in.Lat,
		Lon:          in.Lon,
	}
	if err := dbhelper.CreateRestaurant(&restaurant); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, restaurant)
}

func createProduct(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Name        string          `json:"name"`
		CategoryID  *int64          `json:"category_id"`
		Price       decimal.Decimal `json:"price"`
		Description string          `json:"description"`
		Special     bool            `json:"special"`
	}

	var in input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if in.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if in.Price.IsNegative() {
		http.Error(w, "price must not be negative", http.StatusBadRequest)
		return
	}

	product := models.Product{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Description: in.Description,
		Special:     in.Special,
	}
	if err := dbhelper.CreateProduct(&product); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

func upsertMenuItem(w http.ResponseWriter, r *http.Request) {
	type input struct {
		RestaurantID int64 `json:"restaurant_id"`
		ProductID    int64 `json:"product_id"`
		Available    *bool `json:"available"`
	}

	var in input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if in.RestaurantID == 0 || in.ProductID == 0 {
		http.Error(w, "restaurant_id and product_id are required", http.StatusBadRequest)
		return
	}

	item := models.MenuItem{
		RestaurantID: in.RestaurantID,
		ProductID:    in.ProductID,
		Available:    true,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if err := dbhelper.UpsertMenuItem(&item); err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, item)
}
