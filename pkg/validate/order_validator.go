package validate

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// ErrInvalidOrder — базовая (sentinel error) ошибка валидации заказа.
var ErrInvalidOrder = errors.New("order validation failed")

const (
	maxItemsPerOrder  = 100
	maxItemQuantity   = 1000
	maxDiscountCodeSz = 64
)

// OrderValidator — валидация запроса на оформление заказа.
type OrderValidator struct{}

// NewOrderValidator — конструктор OrderValidator.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate — проверяет обязательные поля, позиции и адрес доставки.
// Наличие товаров и остатки здесь не проверяются: это делает резервирование.
func (v *OrderValidator) Validate(_ context.Context, req *domain.CreateOrderRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidOrder)
	}
	if err := v.validateItems(req.Items); err != nil {
		return err
	}
	if err := v.validateShipping(&req.ShippingAddress); err != nil {
		return err
	}
	if !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: paymentMethod %q is not supported", ErrInvalidOrder, req.PaymentMethod)
	}
	if len(req.DiscountCode) > maxDiscountCodeSz {
		return fmt.Errorf("%w: discountCode is too long", ErrInvalidOrder)
	}
	return nil
}

// Валидация позиций
func (v *OrderValidator) validateItems(items []domain.LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidOrder)
	}
	if len(items) > maxItemsPerOrder {
		return fmt.Errorf("%w: too many items (max %d)", ErrInvalidOrder, maxItemsPerOrder)
	}

	for i := range items {
		item := &items[i]
		if strings.TrimSpace(item.ProductID) == "" {
			return fmt.Errorf("%w: items[%d].productId is required", ErrInvalidOrder, i)
		}
		if item.Size == "" && !item.StockExempt() {
			return fmt.Errorf("%w: items[%d].size is required", ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 || item.Quantity > maxItemQuantity {
			return fmt.Errorf("%w: items[%d].quantity must be between 1 and %d", ErrInvalidOrder, i, maxItemQuantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: items[%d].price must be non-negative", ErrInvalidOrder, i)
		}
	}
	return nil
}

// Валидация адреса доставки
func (v *OrderValidator) validateShipping(s *domain.ShippingAddress) error {
	required := []struct{ name, value string }{
		{"fullName", s.FullName},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"email", s.Email},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: shippingAddress.%s is required", ErrInvalidOrder, f.name)
		}
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("%w: shippingAddress.email is invalid", ErrInvalidOrder)
	}
	return nil
}
