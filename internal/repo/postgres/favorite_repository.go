package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// List — активные избранные товары, последние добавленные первыми.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.category, p.images, p.sizes,
			p.is_out_of_stock, p.is_active, p.is_featured, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1 AND p.is_active
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select favorites: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows: %w", err)
	}
	return products, nil
}

// Add — идемпотентное добавление.
func (r *FavoriteRepository) Add(ctx context.Context, userID, productID string) error {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID); err != nil {
		return mapWriteErr("insert favorite", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return false, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return false, mapWriteErr("delete favorite", err)
	}
	return tag.RowsAffected() > 0, nil
}
