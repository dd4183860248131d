package models

import (
	"fmt"
	"time"

	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"

	"github.com/foodcart/backoffice/apperrors"
)

type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderCooking   OrderStatus = "cooking"
	OrderInTransit OrderStatus = "in_transit"
	OrderCompleted OrderStatus = "completed"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentElectronic PaymentMethod = "electronic"
)

type Order struct {
	ID           int64         `db:"id" json:"id"`
	Firstname    string        `db:"firstname" json:"firstname"`
	Lastname     string        `db:"lastname" json:"lastname"`
	Phone        string        `db:"phone" json:"phonenumber"`
	Address      string        `db:"address" json:"address"`
	Status       OrderStatus   `db:"status" json:"status"`
	Payment      PaymentMethod `db:"payment" json:"payment"`
	Comment      string        `db:"comment" json:"comment,omitempty"`
	RestaurantID *int64        `db:"restaurant_id" json:"restaurant_id,omitempty"`
	RegisteredAt time.Time     `db:"registered_at" json:"registered_at"`
	CalledAt     *time.Time    `db:"called_at" json:"called_at,omitempty"`
	DeliveredAt  *time.Time    `db:"delivered_at" json:"delivered_at,omitempty"`

	Items []OrderLineItem `db:"-" json:"products,omitempty"`
}

// OrderLineItem freezes the product's unit price at order time. Later
// price changes never touch historical orders.
type OrderLineItem struct {
	ID        int64           `db:"id" json:"-"`
	OrderID   int64           `db:"order_id" json:"-"`
	ProductID int64           `db:"product_id" json:"product"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
}

// Total is the sum of snapshot price times quantity over all line items.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ProductSet returns the distinct product ids in the order. Quantities
// do not matter for restaurant eligibility, only identity.
func (o Order) ProductSet() map[int64]bool {
	set := make(map[int64]bool, len(o.Items))
	for _, item := range o.Items {
		set[item.ProductID] = true
	}
	return set
}

// CreateOrderRequest is the public order-submission payload. Pointer
// fields distinguish an absent key from an empty value so validation
// can report each precisely.
type CreateOrderRequest struct {
	Firstname   *string            `json:"firstname"`
	Lastname    *string            `json:"lastname"`
	Phonenumber *string            `json:"phonenumber"`
	Address     *string            `json:"address"`
	Products    []OrderItemRequest `json:"products"`
	Payment     *string            `json:"payment"`
	Comment     *string            `json:"comment"`
}

type OrderItemRequest struct {
	Product  *int64 `json:"product"`
	Quantity *int   `json:"quantity"`
}

// Validate checks every field and collects all problems instead of
// stopping at the first. On success it returns the phone normalized to
// E.164 for the given region.
func (r *CreateOrderRequest) Validate(region string) (string, error) {
	verr := &apperrors.ValidationError{}

	requireString(verr, "firstname", r.Firstname)
	requireString(verr, "lastname", r.Lastname)
	requireString(verr, "address", r.Address)

	var normalized string
	if r.Phonenumber == nil || *r.Phonenumber == "" {
		verr.Add("phonenumber", "this field is required")
	} else {
		number, err := phonenumbers.Parse(*r.Phonenumber, region)
		if err != nil || !phonenumbers.IsValidNumber(number) {
			verr.Add("phonenumber", "invalid phone number: "+*r.Phonenumber)
		} else {
			normalized = phonenumbers.Format(number, phonenumbers.E164)
		}
	}

	if len(r.Products) == 0 {
		verr.Add("products", "this list must not be empty")
	}
	for i, item := range r.Products {
		if item.Product == nil {
			verr.Add(fieldAt("products", i, "product"), "this field is required")
		}
		switch {
		case item.Quantity == nil:
			verr.Add(fieldAt("products", i, "quantity"), "this field is required")
		case *item.Quantity < 1:
			verr.Add(fieldAt("products", i, "quantity"), "quantity must be at least 1")
		}
	}

	if r.Payment != nil {
		switch PaymentMethod(*r.Payment) {
		case PaymentCash, PaymentElectronic:
		default:
			verr.Add("payment", "must be one of: cash, electronic")
		}
	}

	if err := verr.ErrOrNil(); err != nil {
		return "", err
	}
	return normalized, nil
}

// PaymentMethod returns the requested payment method, defaulting to
// electronic like the storefront does.
func (r *CreateOrderRequest) PaymentMethod() PaymentMethod {
	if r.Payment == nil {
		return PaymentElectronic
	}
	return PaymentMethod(*r.Payment)
}

func requireString(verr *apperrors.ValidationError, field string, value *string) {
	if value == nil || *value == "" {
		verr.Add(field, "this field is required")
	}
}

func fieldAt(list string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, index, field)
}
