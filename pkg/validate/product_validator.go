package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

type ProductValidator struct{}

func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — название, категория и хотя бы один размер с уникальной меткой.
func (v *ProductValidator) Validate(_ context.Context, p *domain.Product) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	}
	if len(p.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", ErrInvalidProduct)
	}

	seen := make(map[string]struct{}, len(p.Sizes))
	for i := range p.Sizes {
		s := &p.Sizes[i]
		if s.Size == "" {
			return fmt.Errorf("%w: sizes[%d].size is required", ErrInvalidProduct, i)
		}
		if _, dup := seen[s.Size]; dup {
			return fmt.Errorf("%w: duplicate size %q", ErrInvalidProduct, s.Size)
		}
		seen[s.Size] = struct{}{}

		if s.StockCount != nil && *s.StockCount < 0 {
			return fmt.Errorf("%w: sizes[%d].stockCount must be non-negative", ErrInvalidProduct, i)
		}
		if s.OriginalPrice != nil && s.OriginalPrice.IsNegative() {
			return fmt.Errorf("%w: sizes[%d].originalPrice must be non-negative", ErrInvalidProduct, i)
		}
		if s.DiscountedPrice != nil && s.DiscountedPrice.IsNegative() {
			return fmt.Errorf("%w: sizes[%d].discountedPrice must be non-negative", ErrInvalidProduct, i)
		}
		if s.OriginalPrice != nil && s.DiscountedPrice != nil && s.DiscountedPrice.GreaterThan(*s.OriginalPrice) {
			return fmt.Errorf("%w: sizes[%d].discountedPrice exceeds originalPrice", ErrInvalidProduct, i)
		}
	}
	return nil
}
