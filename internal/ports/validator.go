package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, req *domain.CreateOrderRequest) error
}

type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
