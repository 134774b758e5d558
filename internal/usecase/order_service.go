package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService — прикладная логика оформления и сопровождения заказов (без знаний о транспорте).
type OrderService struct {
	orders    ports.OrderRepository
	stock     *StockReserver
	users     ports.UserDirectory
	discounts ports.DiscountRepository
	events    ports.OrderEventPublisher // nil — публикация выключена
	cache     ports.ResponseCache
	validator ports.OrderValidator
	log       ports.Logger

	now    func() time.Time
	random io.Reader
}

// OrderOption — необязательные зависимости OrderService.
type OrderOption func(*OrderService)

// WithOrderEvents — публикация событий о новых заказах.
func WithOrderEvents(p ports.OrderEventPublisher) OrderOption {
	return func(s *OrderService) { s.events = p }
}

// WithOrderClock — источник времени для номеров заказов и проверки промокодов.
func WithOrderClock(now func() time.Time) OrderOption {
	return func(s *OrderService) { s.now = now }
}

// WithOrderRandom — источник случайной части номера заказа.
func WithOrderRandom(r io.Reader) OrderOption {
	return func(s *OrderService) { s.random = r }
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	orders ports.OrderRepository,
	stock *StockReserver,
	users ports.UserDirectory,
	discounts ports.DiscountRepository,
	cache ports.ResponseCache,
	validator ports.OrderValidator,
	log ports.Logger,
	opts ...OrderOption,
) *OrderService {
	s := &OrderService{
		orders:    orders,
		stock:     stock,
		users:     users,
		discounts: discounts,
		cache:     cache,
		validator: validator,
		log:       log,
		now:       time.Now,
		random:    rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOrder — оформление заказа.
// Шаги:
//  1. валидация запроса (validate.ErrInvalidOrder);
//  2. определение владельца: пользователь из токена, иначе гость или учётная запись с тем же email;
//  3. промокод (domain.ErrInvalidDiscount);
//  4. проверка остатков (Reserve) — до записи заказа;
//  5. запись заказа; при ошибке резерв снимается;
//  6. списание остатков (Commit), событие, сброс кэша — best-effort.
func (s *OrderService) CreateOrder(ctx context.Context, req *domain.CreateOrderRequest, claims *domain.Claims) (*domain.Order, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		s.log.Warnf(ctx, "order validation failed err=%v", err)
		return nil, err
	}

	userID, linked := s.resolveOwner(ctx, claims, req.ShippingAddress.Email)

	subtotal := decimal.Zero
	for i := range req.Items {
		subtotal = subtotal.Add(req.Items[i].Subtotal())
	}

	code, discount, err := s.resolveDiscount(ctx, req.DiscountCode, subtotal)
	if err != nil {
		return nil, err
	}

	reservation, err := s.stock.Reserve(ctx, req.Items)
	if err != nil {
		s.log.Warnf(ctx, "stock reservation rejected err=%v", err)
		return nil, err
	}

	now := s.now().UTC()
	orderID, err := domain.NewOrderID(now, s.random)
	if err != nil {
		s.stock.Release(ctx, reservation)
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	items := make([]domain.LineItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		if items[i].ProductName == "" {
			items[i].ProductName = reservation.ProductName(items[i].ProductID)
		}
	}

	order := &domain.Order{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		UserID:         userID,
		LinkedByEmail:  linked,
		Items:          items,
		Subtotal:       subtotal,
		DiscountCode:   code,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
		Status:         domain.OrderStatusPending,
		Shipping:       req.ShippingAddress,
		PaymentMethod:  req.PaymentMethod,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.stock.Release(ctx, reservation)
		s.log.Errorf(ctx, "orders.Create failed order_id=%s err=%v", order.OrderID, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.stock.Commit(ctx, reservation)
	metrics.OrdersCreated.Inc()

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, order); err != nil {
			s.log.Warnf(ctx, "publish order.created failed order_id=%s err=%v", order.OrderID, err)
		}
	}
	s.cache.Clear(ctx)

	s.log.Infof(ctx, "order created order_id=%s user_id=%s items=%d total=%s", order.OrderID, order.UserID, len(order.Items), order.Total)
	return order, nil
}

// resolveOwner — владелец заказа. Совпадение email только привязывает заказ
// к учётной записи и не даёт гостю никаких прав на неё.
func (s *OrderService) resolveOwner(ctx context.Context, claims *domain.Claims, email string) (string, bool) {
	if claims != nil && claims.UserID != "" {
		return claims.UserID, false
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || s.users == nil {
		return domain.GuestUserID, false
	}
	userID, err := s.users.FindIDByEmail(ctx, email)
	if err != nil {
		s.log.Warnf(ctx, "user lookup by email failed, falling back to guest err=%v", err)
		return domain.GuestUserID, false
	}
	if userID == "" {
		return domain.GuestUserID, false
	}
	return userID, true
}

func (s *OrderService) resolveDiscount(ctx context.Context, raw string, subtotal decimal.Decimal) (string, decimal.Decimal, error) {
	code := normalizeCode(raw)
	if code == "" {
		return "", decimal.Zero, nil
	}
	d, err := s.discounts.GetByCode(ctx, code)
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("load discount: %w", err)
	}
	if !d.Usable(s.now()) {
		return "", decimal.Zero, fmt.Errorf("%w: %s", domain.ErrInvalidDiscount, code)
	}
	return code, d.Amount(subtotal), nil
}

// GetOrder — заказ по публичному номеру. Возвращает (nil, nil), если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		s.log.Errorf(ctx, "orders.GetByOrderID failed order_id=%s err=%v", orderID, err)
		return nil, err
	}
	return order, nil
}

// OrdersByUser — проксирование в репозиторий (пагинация уже валидирована на верхнем уровне).
func (s *OrderService) OrdersByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

// ListOrders — административный список с фильтром по статусу.
func (s *OrderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, filter.Status)
	}
	return s.orders.List(ctx, filter)
}

// UpdateStatus — смена статуса (админка или Kafka).
func (s *OrderService) UpdateStatus(ctx context.Context, upd domain.StatusUpdate) error {
	if !upd.Status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, upd.Status)
	}
	found, err := s.orders.UpdateStatus(ctx, upd.OrderID, upd.Status)
	if err != nil {
		s.log.Errorf(ctx, "orders.UpdateStatus failed order_id=%s err=%v", upd.OrderID, err)
		return err
	}
	if !found {
		return fmt.Errorf("order %s: %w", upd.OrderID, domain.ErrNotFound)
	}
	s.cache.Clear(ctx)
	s.log.Infof(ctx, "order status updated order_id=%s status=%s", upd.OrderID, upd.Status)
	return nil
}

// ApplyStatusMessage — смена статуса из сообщения Kafka (raw JSON).
// Неразборчивое сообщение и неизвестный заказ возвращают validate.ErrInvalidStatusUpdate:
// повторная обработка их не исправит.
func (s *OrderService) ApplyStatusMessage(ctx context.Context, raw []byte) error {
	upd, err := validate.DecodeStatusUpdate(raw)
	if err != nil {
		return err
	}
	err = s.UpdateStatus(ctx, upd)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %w", validate.ErrInvalidStatusUpdate, err)
	}
	return err
}

// LookupDiscount — публичная проверка промокода; недействующий код неотличим от отсутствующего.
func (s *OrderService) LookupDiscount(ctx context.Context, code string) (*domain.Discount, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, domain.ErrNotFound
	}
	d, err := s.discounts.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !d.Usable(s.now()) {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
