package usecase_test

import (
	"context"
	"sync"

	"github.com/Gunvolt24/storefront/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// fakeProducts — каталог в памяти; GetByID отдаёт копию, как это делает БД.
type fakeProducts struct {
	mu        sync.Mutex
	items     map[string]*domain.Product
	updateErr error
	writes    []stockWrite
}

type stockWrite struct {
	id         string
	sizes      []domain.Size
	outOfStock bool
}

func newFakeProducts(products ...*domain.Product) *fakeProducts {
	f := &fakeProducts{items: make(map[string]*domain.Product)}
	for _, p := range products {
		f.items[p.ID] = p
	}
	return f
}

func (f *fakeProducts) List(context.Context, domain.ProductFilter) ([]*domain.Product, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, copyProduct(p))
	}
	return out, len(out), nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

func (f *fakeProducts) Create(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[p.ID] = copyProduct(p)
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *domain.Product) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.ID]; !ok {
		return false, nil
	}
	f.items[p.ID] = copyProduct(p)
	return true, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[id]
	delete(f.items, id)
	return ok, nil
}

func (f *fakeProducts) UpdateStock(_ context.Context, id string, sizes []domain.Size, outOfStock bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Sizes = domain.CloneSizes(sizes)
	p.IsOutOfStock = outOfStock
	f.writes = append(f.writes, stockWrite{id: id, sizes: domain.CloneSizes(sizes), outOfStock: outOfStock})
	return nil
}

func (f *fakeProducts) stock(t interface{ Fatalf(string, ...any) }, id, size string) *int {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		t.Fatalf("product %s not found", id)
	}
	s := p.FindSize(size)
	if s == nil {
		t.Fatalf("size %s not found", size)
	}
	return s.StockCount
}

func copyProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Sizes = domain.CloneSizes(p.Sizes)
	return &cp
}

// fakeOrders — хранилище заказов в памяти.
type fakeOrders struct {
	mu        sync.Mutex
	rows      []*domain.Order
	createErr error
}

func (f *fakeOrders) Create(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *o
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeOrders) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.rows {
		if o.OrderID == orderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID string, limit, offset int) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Order
	for _, o := range f.rows {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(context.Context, domain.OrderFilter) ([]*domain.Order, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, len(f.rows), nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.rows {
		if o.OrderID == orderID {
			o.Status = status
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}
