package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id, order_id, user_id, linked_by_email, subtotal, discount_code, discount_amount, total,
	status, payment_method, ship_full_name, ship_phone, ship_email, ship_address, ship_city,
	ship_postal, ship_country, created_at, updated_at`

// OrderRepository — реализация репозитория заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Create — заказ и его позиции в одной транзакции.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" || order.OrderID == "" {
		return errors.New("order is empty or id is required")
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	// 1) orders — основная запись.
	s := &order.Shipping
	if _, err = transaction.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		order.ID, order.OrderID, order.UserID, order.LinkedByEmail, order.Subtotal, order.DiscountCode,
		order.DiscountAmount, order.Total, string(order.Status), string(order.PaymentMethod),
		s.FullName, s.Phone, s.Email, s.Address, s.City, s.PostalCode, s.Country,
		order.CreatedAt, order.UpdatedAt,
	); err != nil {
		return mapWriteErr("insert order", err)
	}

	// 2) order_items — одним batch, порядок позиций сохраняется в position.
	if len(order.Items) > 0 {
		if err = insertItems(ctx, transaction, order.ID, order.Items); err != nil {
			return err
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return mapWriteErr("commit", err)
	}
	return nil
}

// GetByOrderID — заказ по публичному номеру. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser — заказы пользователя, новые первыми.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, order_id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
}

// List — административный список с необязательным фильтром статуса и общим числом строк.
func (r *OrderRepository) List(ctx context.Context, f domain.OrderFilter) ([]*domain.Order, int, error) {
	where := ""
	var args []any
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = ` WHERE status = $1`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, max(f.Offset, 0))
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY created_at DESC, order_id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus — false, если заказа нет.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = now() WHERE order_id = $1
	`, orderID, string(status))
	if err != nil {
		return false, mapWriteErr("update order status", err)
	}
	return tag.RowsAffected() > 0, nil
}

// queryOrders — 2 запроса на страницу: базовые заказы + позиции для всех id страницы,
// затем склейка в памяти с сохранением порядка.
func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return []*domain.Order{}, nil // пустая страница
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT order_row_id, product_id, product_name, size, quantity, price, is_gift_package, is_custom_size
		FROM order_items
		WHERE order_row_id = ANY($1::uuid[])
		ORDER BY order_row_id, position
	`, ids)
	if err != nil {
		return fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rowID string
			item  domain.LineItem
		)
		if err := rows.Scan(&rowID, &item.ProductID, &item.ProductName, &item.Size, &item.Quantity,
			&item.Price, &item.IsGiftPackage, &item.IsCustomSize); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		if o := byID[rowID]; o != nil {
			o.Items = append(o.Items, item)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("items rows: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o              domain.Order
		status, method string
	)
	s := &o.Shipping
	if err := row.Scan(
		&o.ID, &o.OrderID, &o.UserID, &o.LinkedByEmail, &o.Subtotal, &o.DiscountCode, &o.DiscountAmount, &o.Total,
		&status, &method, &s.FullName, &s.Phone, &s.Email, &s.Address, &s.City, &s.PostalCode, &s.Country,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = domain.OrderStatus(status)
	o.PaymentMethod = domain.PaymentMethod(method)
	return &o, nil
}

// insertItems — вставка позиций одним pgx.Batch (одна сетевая отправка на заказ).
func insertItems(ctx context.Context, tx pgx.Tx, orderRowID string, items []domain.LineItem) error {
	batch := &pgx.Batch{}
	for i := range items {
		item := &items[i]
		batch.Queue(`
			INSERT INTO order_items (
				order_row_id, position, product_id, product_name, size, quantity, price, is_gift_package, is_custom_size
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, orderRowID, i, item.ProductID, item.ProductName, item.Size, item.Quantity, item.Price,
			item.IsGiftPackage, item.IsCustomSize)
	}

	results := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return mapWriteErr("insert items", err)
		}
	}
	if err := results.Close(); err != nil {
		return mapWriteErr("insert items", err)
	}
	return nil
}
