package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/google/uuid"
)

var _ ports.CatalogService = (*CatalogService)(nil)

// CatalogService — каталог товаров. Любая успешная запись полностью сбрасывает кэш ответов.
type CatalogService struct {
	products  ports.ProductRepository
	cache     ports.ResponseCache
	validator ports.ProductValidator
	log       ports.Logger
	now       func() time.Time
}

func NewCatalogService(
	products ports.ProductRepository,
	cache ports.ResponseCache,
	validator ports.ProductValidator,
	log ports.Logger,
) *CatalogService {
	return &CatalogService{
		products:  products,
		cache:     cache,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

// ListProducts — выборка каталога. Флаг распроданности берётся из БД как есть.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, int, error) {
	start := time.Now()
	list, total, err := s.products.List(ctx, filter)
	if err != nil {
		s.log.Errorf(ctx, "products.List failed err=%v", err)
		return nil, 0, err
	}
	s.log.Infof(ctx, "db fetch products count=%d total=%d took=%s", len(list), total, time.Since(start))
	return list, total, nil
}

// GetProduct — карточка товара; флаг распроданности пересчитывается по размерам.
// Неактивный товар виден только при includeInactive.
func (s *CatalogService) GetProduct(ctx context.Context, id string, includeInactive bool) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "products.GetByID failed id=%s err=%v", id, err)
		return nil, err
	}
	if p == nil || (!p.IsActive && !includeInactive) {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	p.IsOutOfStock = domain.OutOfStock(p.Sizes)
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := s.validator.Validate(ctx, p); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p.ID = uuid.NewString()
	p.IsOutOfStock = domain.OutOfStock(p.Sizes)
	p.CreatedAt, p.UpdatedAt = now, now

	if err := s.products.Create(ctx, p); err != nil {
		s.log.Errorf(ctx, "products.Create failed err=%v", err)
		return nil, err
	}
	s.cache.Clear(ctx)
	s.log.Infof(ctx, "product created id=%s", p.ID)
	return p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := s.validator.Validate(ctx, p); err != nil {
		return nil, err
	}
	p.IsOutOfStock = domain.OutOfStock(p.Sizes)
	p.UpdatedAt = s.now().UTC()

	found, err := s.products.Update(ctx, p)
	if err != nil {
		s.log.Errorf(ctx, "products.Update failed id=%s err=%v", p.ID, err)
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	s.cache.Clear(ctx)
	s.log.Infof(ctx, "product updated id=%s", p.ID)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	found, err := s.products.Delete(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "products.Delete failed id=%s err=%v", id, err)
		return err
	}
	if !found {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	s.cache.Clear(ctx)
	s.log.Infof(ctx, "product deleted id=%s", id)
	return nil
}
