//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct — активный товар с размерами S (5 шт.) и M (0 шт.).
func MakeProduct(opts ...func(*domain.Product)) domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	price := decimal.RequireFromString("49.90")

	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        "Linen shirt " + UniqSuffix(),
		Description: "Relaxed fit",
		Category:    "shirts",
		Images:      []string{"/static/img/shirt.webp"},
		Sizes: []domain.Size{
			{Size: "S", Volume: "", OriginalPrice: &price, StockCount: domain.IntPtr(5)},
			{Size: "M", Volume: "", OriginalPrice: &price, StockCount: domain.IntPtr(0)},
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, fn := range opts {
		fn(&p)
	}
	p.IsOutOfStock = domain.OutOfStock(p.Sizes)
	return p
}

// MakeOrderRequest — валидный запрос заказа на одну позицию.
func MakeOrderRequest(productID, size string, qty int) domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		Items: []domain.LineItem{
			{ProductID: productID, Size: size, Quantity: qty, Price: decimal.RequireFromString("49.90")},
		},
		ShippingAddress: domain.ShippingAddress{
			FullName: "John Smith",
			Phone:    "+1-202-555-01",
			Email:    "john+" + UniqSuffix() + "@example.com",
			Address:  "Main st 1",
			City:     "Metropolis",
		},
		PaymentMethod: domain.PaymentCashOnDelivery,
	}
}

// MakeOrder — сохранённый заказ (как его собирает OrderService) для тестов репозитория.
func MakeOrder(userID string, items ...domain.LineItem) domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	sub := decimal.Zero
	for i := range items {
		sub = sub.Add(items[i].Subtotal())
	}
	return domain.Order{
		ID:             uuid.NewString(),
		OrderID:        "ORD-TEST-" + UniqSuffix(),
		UserID:         userID,
		Items:          items,
		Subtotal:       sub,
		DiscountAmount: decimal.Zero,
		Total:          sub,
		Status:         domain.OrderStatusPending,
		Shipping: domain.ShippingAddress{
			FullName: "John Smith", Phone: "+1", Email: "john@example.com", Address: "Main st 1", City: "Metropolis",
		},
		PaymentMethod: domain.PaymentCard,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
