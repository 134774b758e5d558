package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// ProductRepository — хранилище каталога.
// GetByID возвращает (nil, nil), если товара нет.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// UpdateStock — запись размеров и флага распроданности одним UPDATE.
	UpdateStock(ctx context.Context, id string, sizes []domain.Size, outOfStock bool) error
}
