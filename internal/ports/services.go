package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CatalogService — сценарии каталога для транспортного слоя.
type CatalogService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int, error)
	GetProduct(ctx context.Context, id string, includeInactive bool) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// OrderService — сценарии заказов для транспортного слоя.
type OrderService interface {
	CreateOrder(ctx context.Context, req *domain.CreateOrderRequest, claims *domain.Claims) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int, error)
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) error
	LookupDiscount(ctx context.Context, code string) (*domain.Discount, error)
}

// FavoriteService — избранное.
type FavoriteService interface {
	List(ctx context.Context, userID string) ([]*domain.Product, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}
