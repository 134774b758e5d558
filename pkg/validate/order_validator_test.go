package validate_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/shopspring/decimal"
)

func validRequest() *domain.CreateOrderRequest {
	return &domain.CreateOrderRequest{
		Items: []domain.LineItem{
			{ProductID: "p1", Size: "M", Quantity: 1, Price: decimal.RequireFromString("49.90")},
		},
		ShippingAddress: domain.ShippingAddress{
			FullName: "Jane Doe",
			Phone:    "+10000000000",
			Email:    "jane@example.com",
			Address:  "1 Main St",
			City:     "Springfield",
		},
		PaymentMethod: domain.PaymentCashOnDelivery,
	}
}

func TestOrderValidator_Validate(t *testing.T) {
	v := validate.NewOrderValidator()
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		if err := v.Validate(ctx, validRequest()); err != nil {
			t.Fatalf("expected valid request, got: %v", err)
		}
	})

	t.Run("gift package without size", func(t *testing.T) {
		r := validRequest()
		r.Items[0].Size = ""
		r.Items[0].IsGiftPackage = true
		if err := v.Validate(ctx, r); err != nil {
			t.Fatalf("gift package must not require size, got: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest
		msg    string
	}{
		{"nil request", func(*domain.CreateOrderRequest) *domain.CreateOrderRequest { return nil }, "request is required"},
		{"no items", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.Items = nil; return r }, "items must not be empty"},
		{"empty productId", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.Items[0].ProductID = " "; return r }, "items[0].productId is required"},
		{"empty size", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.Items[0].Size = ""; return r }, "items[0].size is required"},
		{"zero quantity", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.Items[0].Quantity = 0; return r }, "items[0].quantity"},
		{"negative price", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest {
			r.Items[0].Price = decimal.NewFromInt(-1)
			return r
		}, "items[0].price must be non-negative"},
		{"empty fullName", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.ShippingAddress.FullName = ""; return r }, "shippingAddress.fullName is required"},
		{"bad email", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.ShippingAddress.Email = "nope"; return r }, "shippingAddress.email is invalid"},
		{"bad payment", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest { r.PaymentMethod = "crypto"; return r }, "paymentMethod"},
		{"long discount", func(r *domain.CreateOrderRequest) *domain.CreateOrderRequest {
			r.DiscountCode = strings.Repeat("X", 65)
			return r
		}, "discountCode is too long"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(ctx, tc.mutate(validRequest()))
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !errors.Is(err, validate.ErrInvalidOrder) {
				t.Fatalf("expected ErrInvalidOrder, got: %v", err)
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected %q in %q", tc.msg, err.Error())
			}
		})
	}
}
