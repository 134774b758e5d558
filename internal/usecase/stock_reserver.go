package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// Reservation — результат успешной проверки остатков.
// Хранит позиции, которые нужно списать после сохранения заказа.
type Reservation struct {
	lines   []reservedLine
	names   map[string]string // productID -> название на момент проверки
	settled bool
}

type reservedLine struct {
	productID string
	size      string
	quantity  int
}

// ProductName — название товара, прочитанное при проверке ("" если товар не проверялся).
func (r *Reservation) ProductName(productID string) string {
	if r == nil {
		return ""
	}
	return r.names[productID]
}

// StockReserver — двухфазный учёт остатков: Reserve проверяет, Commit списывает.
//
// Между Reserve и Commit нет ни блокировок, ни проверки версии строки:
// два одновременных заказа могут пройти проверку по одному и тому же остатку
// (oversell). Commit лишь не даёт остатку уйти ниже нуля. Атомарное условное
// списание в хранилище можно подставить за этим же интерфейсом.
type StockReserver struct {
	products ports.ProductRepository
	log      ports.Logger
}

func NewStockReserver(products ports.ProductRepository, log ports.Logger) *StockReserver {
	return &StockReserver{products: products, log: log}
}

// Reserve — проверка позиций заказа по текущим остаткам.
// Подарочные наборы и индивидуальный размер не проверяются.
// Каждая позиция сверяется с остатком отдельно: две позиции одного товара и размера
// не суммируются, и Commit в таком случае лишь опускает остаток до нуля.
// Возвращает *domain.ProductNotFoundError или *domain.InsufficientStockError.
func (r *StockReserver) Reserve(ctx context.Context, items []domain.LineItem) (*Reservation, error) {
	res := &Reservation{names: make(map[string]string)}

	for i := range items {
		item := &items[i]
		if item.StockExempt() {
			continue
		}

		product, err := r.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, err)
		}
		if product == nil {
			metrics.StockRejections.WithLabelValues("not_found").Inc()
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
		res.names[product.ID] = product.Name

		// Неизвестный размер или неотслеживаемый остаток — ограничений нет.
		if size := product.FindSize(item.Size); size != nil && size.StockCount != nil && item.Quantity > *size.StockCount {
			metrics.StockRejections.WithLabelValues("insufficient").Inc()
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Size:        item.Size,
				Available:   *size.StockCount,
				Requested:   item.Quantity,
			}
		}

		res.lines = append(res.lines, reservedLine{
			productID: item.ProductID,
			size:      item.Size,
			quantity:  item.Quantity,
		})
	}
	return res, nil
}

// Commit — списание остатков после сохранения заказа (best-effort).
// Каждый товар перечитывается заново, остаток уменьшается до max(0, count-qty),
// флаг распроданности пересчитывается и пишется тем же UPDATE.
// Ошибки только логируются: заказ уже сохранён и не откатывается.
func (r *StockReserver) Commit(ctx context.Context, res *Reservation) {
	if res == nil || res.settled {
		return
	}
	res.settled = true

	for _, group := range groupByProduct(res.lines) {
		if err := r.decrementProduct(ctx, group.productID, group.lines); err != nil {
			metrics.StockDecrementFailures.Inc()
			r.log.Errorf(ctx, "stock decrement failed product_id=%s err=%v", group.productID, err)
		}
	}
}

// Release — отказ от резерва (заказ не сохранён). Остатки на этапе Reserve
// не меняются, поэтому возвращать нечего; повторный Commit после Release невозможен.
func (r *StockReserver) Release(ctx context.Context, res *Reservation) {
	if res == nil || res.settled {
		return
	}
	res.settled = true
	r.log.Infof(ctx, "stock reservation released lines=%d", len(res.lines))
}

func (r *StockReserver) decrementProduct(ctx context.Context, productID string, lines []reservedLine) error {
	product, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	if product == nil {
		return fmt.Errorf("reload: %w", domain.ErrNotFound)
	}

	sizes := domain.CloneSizes(product.Sizes)
	changed := false
	for _, line := range lines {
		for i := range sizes {
			if sizes[i].Size != line.size || sizes[i].StockCount == nil {
				continue
			}
			sizes[i].StockCount = domain.IntPtr(max(0, *sizes[i].StockCount-line.quantity))
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return r.products.UpdateStock(ctx, productID, sizes, domain.OutOfStock(sizes))
}

type productLines struct {
	productID string
	lines     []reservedLine
}

// groupByProduct — группировка с сохранением порядка первого появления товара.
func groupByProduct(lines []reservedLine) []productLines {
	idx := make(map[string]int)
	var out []productLines
	for _, l := range lines {
		i, ok := idx[l.productID]
		if !ok {
			i = len(out)
			idx[l.productID] = i
			out = append(out, productLines{productID: l.productID})
		}
		out[i].lines = append(out[i].lines, l)
	}
	return out
}
