package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// UserDirectory — поиск учётной записи по email ("" — не найдена).
type UserDirectory interface {
	FindIDByEmail(ctx context.Context, email string) (string, error)
}

// DiscountRepository — справочник промокодов; (nil, nil), если кода нет.
type DiscountRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Discount, error)
}

// FavoriteRepository — избранные товары пользователя.
type FavoriteRepository interface {
	List(ctx context.Context, userID string) ([]*domain.Product, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) (bool, error)
}
