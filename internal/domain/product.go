package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Size — вариант товара (размер/объём) со своей ценой и остатком.
// StockCount == nil означает, что остаток по размеру не отслеживается (покупка без ограничений).
type Size struct {
	Size            string           `json:"size"`
	Volume          string           `json:"volume"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discountedPrice,omitempty"`
	StockCount      *int             `json:"stockCount,omitempty"`
}

// Product — товар каталога.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Images       []string  `json:"images"`
	Sizes        []Size    `json:"sizes"`
	IsOutOfStock bool      `json:"isOutOfStock"`
	IsActive     bool      `json:"isActive"`
	IsFeatured   bool      `json:"isFeatured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductFilter — параметры выборки каталога.
type ProductFilter struct {
	Category        string
	Featured        *bool
	Search          string
	IncludeInactive bool
	Limit           int // 0 — без ограничения
	Offset          int
}

// FindSize — размер по точному совпадению метки; nil, если такого нет.
func (p *Product) FindSize(label string) *Size {
	for i := range p.Sizes {
		if p.Sizes[i].Size == label {
			return &p.Sizes[i]
		}
	}
	return nil
}

// OutOfStock — товар считается распроданным, если у каждого размера остаток
// не задан или равен нулю.
func OutOfStock(sizes []Size) bool {
	for i := range sizes {
		if sc := sizes[i].StockCount; sc != nil && *sc > 0 {
			return false
		}
	}
	return true
}

// CloneSizes — глубокая копия размеров (указатели на остатки/цены не разделяются).
func CloneSizes(sizes []Size) []Size {
	if sizes == nil {
		return nil
	}
	out := make([]Size, len(sizes))
	for i, s := range sizes {
		out[i] = s
		if s.StockCount != nil {
			v := *s.StockCount
			out[i].StockCount = &v
		}
		if s.OriginalPrice != nil {
			v := *s.OriginalPrice
			out[i].OriginalPrice = &v
		}
		if s.DiscountedPrice != nil {
			v := *s.DiscountedPrice
			out[i].DiscountedPrice = &v
		}
	}
	return out
}

// IntPtr — удобный конструктор остатка.
func IntPtr(v int) *int { return &v }
