package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind — тип скидки.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// Discount — промокод.
type Discount struct {
	Code      string          `json:"code"`
	Kind      DiscountKind    `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	Active    bool            `json:"-"`
	ExpiresAt *time.Time      `json:"expiresAt,omitempty"`
}

// Usable — промокод активен и не истёк к моменту now.
func (d *Discount) Usable(now time.Time) bool {
	if d == nil || !d.Active {
		return false
	}
	return d.ExpiresAt == nil || now.Before(*d.ExpiresAt)
}

// Amount — размер скидки для суммы subtotal; не превышает subtotal и не отрицательна.
func (d *Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch d.Kind {
	case DiscountPercent:
		amount = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		amount = d.Value
	default:
		return decimal.Zero
	}
	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}
