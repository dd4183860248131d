package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/foodcart/backoffice/apperrors"
	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/database/dbhelper"
	"github.com/foodcart/backoffice/geocode"
	"github.com/foodcart/backoffice/models"
	"github.com/foodcart/backoffice/ranking"
	"github.com/foodcart/backoffice/utils"
)

const coordinatePrefetchTimeout = 10 * time.Second

// OrderAPI serves order intake and the manager order listing. It holds
// the coordinate cache the ranking engine resolves addresses through.
type OrderAPI struct {
	cache       *geocode.Cache
	phoneRegion string
}

func NewOrderAPI(cache *geocode.Cache, phoneRegion string) *OrderAPI {
	return &OrderAPI{
		cache:       cache,
		phoneRegion: phoneRegion,
	}
}

// RegisterOrder handles the public order submission. Validation
// failures create nothing; a valid order and all of its line items
// commit atomically, snapshotting each product's current price.
func (api *OrderAPI) RegisterOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		utils.RespondError(w, decodeError(err))
		return
	}

	phone, err := req.Validate(api.phoneRegion)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	var productIDs []int64
	for _, item := range req.Products {
		productIDs = append(productIDs, *item.Product)
	}

	products, err := dbhelper.GetProductsByIDs(productIDs)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	verr := &apperrors.ValidationError{}
	for i, item := range req.Products {
		if _, ok := products[*item.Product]; !ok {
			verr.Add(fmt.Sprintf("products[%d].product", i),
				fmt.Sprintf("product with id %d does not exist", *item.Product))
		}
	}
	if err := verr.ErrOrNil(); err != nil {
		utils.RespondError(w, err)
		return
	}

	order := models.Order{
		Firstname: *req.Firstname,
		Lastname:  *req.Lastname,
		Phone:     phone,
		Address:   *req.Address,
		Status:    models.OrderNew,
		Payment:   req.PaymentMethod(),
	}
	if req.Comment != nil {
		order.Comment = *req.Comment
	}
	for _, item := range req.Products {
		order.Items = append(order.Items, models.OrderLineItem{
			ProductID: *item.Product,
			Quantity:  *item.Quantity,
			Price:     products[*item.Product].Price,
		})
	}

	txErr := database.Tx(func(tx *sql.Tx) error {
		return dbhelper.CreateOrder(tx, &order)
	})
	if txErr != nil {
		utils.RespondError(w, txErr)
		return
	}

	// Warm the coordinate cache for the delivery address. Best effort:
	// a geocoder outage must never fail an already-committed order.
	ctx, cancel := context.WithTimeout(context.Background(), coordinatePrefetchTimeout)
	defer cancel()
	if _, err := api.cache.GetOrFetch(ctx, order.Address); err != nil && !errors.Is(err, geocode.ErrNotFound) {
		logrus.WithError(err).WithField("address", order.Address).
			Warn("coordinate prefetch failed, order list will retry lazily")
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

type orderView struct {
	models.Order
	Total       decimal.Decimal            `json:"total"`
	Restaurants []ranking.RankedRestaurant `json:"restaurants"`
}

// ListOrders renders the manager view: every order annotated with its
// total and the restaurants able to fulfill it, closest first. Pass
// ?active=true to hide completed orders.
func (api *OrderAPI) ListOrders(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	orders, err := dbhelper.ListOrdersWithItems(activeOnly)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	restaurants, err := dbhelper.ListRestaurants()
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	menuItems, err := dbhelper.ListAvailableMenuItems()
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	index := ranking.NewMenuIndex(menuItems)

	// one bulk read of cached coordinates serves the whole page
	snapshot, err := geocode.NewSnapshot(api.cache)
	if err != nil {
		utils.RespondError(w, err)
		return
	}
	engine := ranking.NewEngine(snapshot)

	views := make([]orderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView{
			Order:       order,
			Total:       order.Total(),
			Restaurants: engine.Rank(r.Context(), order, restaurants, index),
		})
	}

	utils.RespondJSON(w, http.StatusOK, views)
}

// decodeError turns JSON decoding failures into field-level validation
// errors where the offending field is known.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		verr := &apperrors.ValidationError{}
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		verr.Add(field, fmt.Sprintf("expected %s", typeErr.Type))
		return verr
	}

	verr := &apperrors.ValidationError{}
	verr.Add("body", "invalid JSON payload")
	return verr
}
