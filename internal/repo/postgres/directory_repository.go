package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ ports.UserDirectory      = (*UserRepository)(nil)
	_ ports.DiscountRepository = (*DiscountRepository)(nil)
)

// UserRepository — чтение учётных записей (таблицей владеет система аутентификации).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository { return &UserRepository{pool: pool} }

// FindIDByEmail — id пользователя по email без учёта регистра; "" если не нашли.
func (r *UserRepository) FindIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE lower(email) = $1`, strings.ToLower(email)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("select user by email: %w", err)
	}
	return id, nil
}

// DiscountRepository — справочник промокодов.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// GetByCode — промокод по коду; (nil, nil), если его нет.
func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	var (
		d    domain.Discount
		kind string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT code, kind, value, active, expires_at FROM discount_codes WHERE code = $1
	`, code).Scan(&d.Code, &kind, &d.Value, &d.Active, &d.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select discount: %w", err)
	}
	d.Kind = domain.DiscountKind(kind)
	return &d, nil
}
