package domain

import (
	"encoding/hex"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GuestUserID — идентификатор, к которому привязываются заказы без авторизации.
const GuestUserID = "guest"

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid — известный ли статус.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod — способ оплаты.
type PaymentMethod string

const (
	PaymentWhatsApp       PaymentMethod = "whatsapp"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCard           PaymentMethod = "card"
)

// Valid — поддерживается ли способ оплаты.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentWhatsApp, PaymentCashOnDelivery, PaymentBankTransfer, PaymentCard:
		return true
	}
	return false
}

// LineItem — позиция заказа. Цена и название фиксируются на момент покупки.
type LineItem struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName,omitempty"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	IsGiftPackage bool            `json:"isGiftPackage,omitempty"`
	IsCustomSize  bool            `json:"isCustomSize,omitempty"`
}

// StockExempt — подарочные наборы и индивидуальный пошив не участвуют в учёте остатков.
func (li *LineItem) StockExempt() bool {
	return li.IsGiftPackage || li.IsCustomSize
}

// Subtotal — стоимость позиции.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ShippingAddress — снимок адреса доставки.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order — заказ.
// OrderID — публичный номер (время + случайная часть), ID — внутренний идентификатор строки.
type Order struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"orderId"`
	UserID         string          `json:"userId"`
	LinkedByEmail  bool            `json:"linkedByEmail,omitempty"`
	Items          []LineItem      `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountCode   string          `json:"discountCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	Shipping       ShippingAddress `json:"shippingAddress"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// OrderFilter — фильтр административного списка заказов.
type OrderFilter struct {
	Status OrderStatus
	Limit  int
	Offset int
}

// CreateOrderRequest — входной payload оформления заказа.
type CreateOrderRequest struct {
	Items           []LineItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	DiscountCode    string          `json:"discountCode,omitempty"`
}

// StatusUpdate — сообщение о смене статуса (из Kafka или админки).
type StatusUpdate struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"status"`
}

// NewOrderID — публичный номер заказа: ORD-<миллисекунды base36>-<4 байта hex>.
// Это не последовательность: уникальность обеспечивает случайный суффикс.
func NewOrderID(now time.Time, rnd io.Reader) (string, error) {
	b := make([]byte, 4)
	if _, err := io.ReadFull(rnd, b); err != nil {
		return "", err
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "ORD-" + ts + "-" + strings.ToUpper(hex.EncodeToString(b)), nil
}
