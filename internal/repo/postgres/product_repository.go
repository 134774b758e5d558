package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что ProductRepository удовлетворяет интерфейсу ProductRepository.
var _ ports.ProductRepository = (*ProductRepository)(nil)

const productColumns = `id, name, description, category, images, sizes, is_out_of_stock, is_active, is_featured, created_at, updated_at`

// ProductRepository — каталог на Postgres. Размеры хранятся одним JSONB-массивом,
// поэтому остатки и флаг распроданности обновляются одним UPDATE.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository { return &ProductRepository{pool: pool} }

// List — страница каталога и общее число подходящих строк.
func (r *ProductRepository) List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, int, error) {
	where, args := productWhere(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0, max(f.Limit, 0))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("products rows: %w", err)
	}
	return products, total, nil
}

// GetByID — товар по id. Если не нашли (или id не UUID), возвращает (nil, nil).
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	images, sizes, err := marshalProductJSON(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Name, p.Description, p.Category, images, sizes,
		p.IsOutOfStock, p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert product", err)
	}
	return nil
}

// Update — полная замена полей товара; false, если товара нет.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) (bool, error) {
	if _, err := uuid.Parse(p.ID); err != nil {
		return false, nil
	}
	images, sizes, err := marshalProductJSON(p)
	if err != nil {
		return false, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET
			name = $2, description = $3, category = $4, images = $5, sizes = $6,
			is_out_of_stock = $7, is_active = $8, is_featured = $9, updated_at = $10
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Category, images, sizes,
		p.IsOutOfStock, p.IsActive, p.IsFeatured, p.UpdatedAt)
	if err != nil {
		return false, mapWriteErr("update product", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, mapWriteErr("delete product", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStock — размеры и флаг распроданности одним UPDATE (без проверки версии строки).
func (r *ProductRepository) UpdateStock(ctx context.Context, id string, sizes []domain.Size, outOfStock bool) error {
	raw, err := json.Marshal(sizes)
	if err != nil {
		return fmt.Errorf("marshal sizes: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET sizes = $2, is_out_of_stock = $3, updated_at = now()
		WHERE id = $1
	`, id, raw, outOfStock)
	if err != nil {
		return mapWriteErr("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ------вспомогательные функции------

func productWhere(f domain.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if !f.IncludeInactive {
		conds = append(conds, "is_active")
	}
	if f.Category != "" {
		add("category = ?", f.Category)
	}
	if f.Featured != nil {
		add("is_featured = ?", *f.Featured)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(name ILIKE ? OR description ILIKE ?)", "%"+escapeLike(s)+"%")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p             domain.Product
		images, sizes []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &images, &sizes,
		&p.IsOutOfStock, &p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("decode images product_id=%s: %w", p.ID, err)
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("decode sizes product_id=%s: %w", p.ID, err)
	}
	return &p, nil
}

func marshalProductJSON(p *domain.Product) ([]byte, []byte, error) {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	rawImages, err := json.Marshal(images)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal images: %w", err)
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []domain.Size{}
	}
	rawSizes, err := json.Marshal(sizes)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal sizes: %w", err)
	}
	return rawImages, rawSizes, nil
}
