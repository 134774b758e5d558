package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

var _ ports.FavoriteService = (*FavoriteService)(nil)

// FavoriteService — избранное пользователя.
type FavoriteService struct {
	favorites ports.FavoriteRepository
	products  ports.ProductRepository
	log       ports.Logger
}

func NewFavoriteService(favorites ports.FavoriteRepository, products ports.ProductRepository, log ports.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products, log: log}
}

func (s *FavoriteService) List(ctx context.Context, userID string) ([]*domain.Product, error) {
	return s.favorites.List(ctx, userID)
}

// Add — добавить активный товар; повторное добавление не ошибка.
func (s *FavoriteService) Add(ctx context.Context, userID, productID string) error {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.IsActive {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	if err := s.favorites.Add(ctx, userID, productID); err != nil {
		s.log.Errorf(ctx, "favorites.Add failed product_id=%s err=%v", productID, err)
		return err
	}
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID string) error {
	removed, err := s.favorites.Remove(ctx, userID, productID)
	if err != nil {
		s.log.Errorf(ctx, "favorites.Remove failed product_id=%s err=%v", productID, err)
		return err
	}
	if !removed {
		return fmt.Errorf("favorite %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}
