package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDiscount — промокод не существует, выключен или истёк.
	ErrInvalidDiscount = errors.New("invalid discount code")
	// ErrStoreMisconfigured — хранилище отклонило запись политикой доступа (RLS/привилегии).
	ErrStoreMisconfigured = errors.New("store rejected write by access policy")
	// ErrInvalidStatus — неизвестный статус заказа.
	ErrInvalidStatus = errors.New("invalid order status")
)

// ProductNotFoundError — позиция заказа ссылается на несуществующий товар.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// Is — ProductNotFoundError совместим с ErrNotFound.
func (e *ProductNotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError — запрошено больше, чем есть на складе для размера.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Size        string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (size %s): available %d, requested %d",
		e.ProductName, e.Size, e.Available, e.Requested)
}
