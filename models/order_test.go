package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foodcart/backoffice/apperrors"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func i64Ptr(i int64) *int64   { return &i }

func validRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Firstname:   strPtr("Ivan"),
		Lastname:    strPtr("Petrov"),
		Phonenumber: strPtr("+79161234567"),
		Address:     strPtr("Tverskaya 1"),
		Products: []OrderItemRequest{
			{Product: i64Ptr(1), Quantity: intPtr(2)},
		},
	}
}

func TestCreateOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreateOrderRequest)
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(r *CreateOrderRequest) {},
		},
		{
			name:      "missing firstname",
			mutate:    func(r *CreateOrderRequest) { r.Firstname = nil },
			wantField: "firstname",
		},
		{
			name:      "empty lastname",
			mutate:    func(r *CreateOrderRequest) { r.Lastname = strPtr("") },
			wantField: "lastname",
		},
		{
			name:      "missing address",
			mutate:    func(r *CreateOrderRequest) { r.Address = nil },
			wantField: "address",
		},
		{
			name:      "invalid phone",
			mutate:    func(r *CreateOrderRequest) { r.Phonenumber = strPtr("123") },
			wantField: "phonenumber",
		},
		{
			name:      "missing phone",
			mutate:    func(r *CreateOrderRequest) { r.Phonenumber = nil },
			wantField: "phonenumber",
		},
		{
			name:      "empty products",
			mutate:    func(r *CreateOrderRequest) { r.Products = nil },
			wantField: "products",
		},
		{
			name: "zero quantity",
			mutate: func(r *CreateOrderRequest) {
				r.Products[0].Quantity = intPtr(0)
			},
			wantField: "products[0].quantity",
		},
		{
			name: "missing product id",
			mutate: func(r *CreateOrderRequest) {
				r.Products[0].Product = nil
			},
			wantField: "products[0].product",
		},
		{
			name:      "unknown payment method",
			mutate:    func(r *CreateOrderRequest) { r.Payment = strPtr("crypto") },
			wantField: "payment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := req.Validate("RU")
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want ValidationError", err)
			}
			for _, field := range verr.Fields() {
				if field.Field == tt.wantField {
					return
				}
			}
			t.Errorf("Validate() fields = %+v, want an error for %q", verr.Fields(), tt.wantField)
		})
	}
}

func TestValidateNormalizesPhone(t *testing.T) {
	req := validRequest()
	req.Phonenumber = strPtr("8 (916) 123-45-67")

	phone, err := req.Validate("RU")
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if phone != "+79161234567" {
		t.Errorf("Validate() phone = %q, want +79161234567", phone)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	req := &CreateOrderRequest{}

	_, err := req.Validate("RU")
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() error = %v, want ValidationError", err)
	}
	if got := len(verr.Fields()); got < 5 {
		t.Errorf("Validate() reported %d fields, want every missing field at once", got)
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("9.99")},
			{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("100.01")},
		},
	}

	if got, want := order.Total(), decimal.RequireFromString("119.99"); !got.Equal(want) {
		t.Errorf("Total() = %s, want %s", got, want)
	}
}

func TestOrderProductSet(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
			{ProductID: 7, Quantity: 1},
		},
	}

	set := order.ProductSet()
	if len(set) != 2 || !set[1] || !set[7] {
		t.Errorf("ProductSet() = %v, want {1, 7}", set)
	}
}

func TestPaymentMethodDefault(t *testing.T) {
	req := validRequest()
	if got := req.PaymentMethod(); got != PaymentElectronic {
		t.Errorf("PaymentMethod() = %q, want electronic default", got)
	}

	req.Payment = strPtr("cash")
	if got := req.PaymentMethod(); got != PaymentCash {
		t.Errorf("PaymentMethod() = %q, want cash", got)
	}
}
