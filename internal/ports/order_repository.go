package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// OrderRepository — хранилище заказов.
// GetByOrderID возвращает (nil, nil), если заказа нет.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error)
}
