package handlers

import (
	"net/http"

	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/utils"
)

// ListProducts returns products currently offered by at least one
// restaurant, the storefront catalogue.
func ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := dbhelper.ListSellableProducts()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

type banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}

// TODO: move banner data to the database once the storefront grows an
// admin screen for it.
var banners = []banner{
	{Title: "Burger", Src: "/static/burger.jpg", Text: "Tasty Burger at your door step"},
	{Title: "Spices", Src: "/static/food.jpg", Text: "All Cuisines"},
	{Title: "New York", Src: "/static/tasty.jpg", Text: "Food is incomplete without a tasty dessert"},
}

func ListBanners(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, banners)
}
