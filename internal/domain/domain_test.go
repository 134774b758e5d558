package domain_test

import (
	"bytes"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOutOfStock(t *testing.T) {
	cases := []struct {
		name  string
		sizes []domain.Size
		want  bool
	}{
		{"no sizes", nil, true},
		{"all untracked", []domain.Size{{Size: "S"}, {Size: "M"}}, true},
		{"all zero", []domain.Size{{Size: "S", StockCount: domain.IntPtr(0)}, {Size: "M", StockCount: domain.IntPtr(0)}}, true},
		{"zero and untracked", []domain.Size{{Size: "S", StockCount: domain.IntPtr(0)}, {Size: "M"}}, true},
		{"one positive", []domain.Size{{Size: "S", StockCount: domain.IntPtr(0)}, {Size: "M", StockCount: domain.IntPtr(1)}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, domain.OutOfStock(tc.sizes))
		})
	}
}

func TestCloneSizes_DoesNotShareStock(t *testing.T) {
	src := []domain.Size{{Size: "S", StockCount: domain.IntPtr(3)}}
	cp := domain.CloneSizes(src)
	*cp[0].StockCount = 0
	require.Equal(t, 3, *src[0].StockCount)
}

func TestFindSize_ExactMatch(t *testing.T) {
	p := &domain.Product{Sizes: []domain.Size{{Size: "M"}, {Size: "L"}}}
	require.NotNil(t, p.FindSize("L"))
	require.Nil(t, p.FindSize("m"))
}

func TestNewOrderID_Format(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	id, err := domain.NewOrderID(now, bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-Z]+-DEADBEEF$`), id)
}

func TestNewOrderID_ShortRandom(t *testing.T) {
	_, err := domain.NewOrderID(time.Now(), bytes.NewReader([]byte{1}))
	require.Error(t, err)
}

func TestDiscountAmount(t *testing.T) {
	sub := decimal.RequireFromString("80")

	pct := &domain.Discount{Kind: domain.DiscountPercent, Value: decimal.NewFromInt(15)}
	require.True(t, pct.Amount(sub).Equal(decimal.NewFromInt(12)))

	fixed := &domain.Discount{Kind: domain.DiscountFixed, Value: decimal.NewFromInt(100)}
	require.True(t, fixed.Amount(sub).Equal(sub), "capped at subtotal")

	neg := &domain.Discount{Kind: domain.DiscountFixed, Value: decimal.NewFromInt(-5)}
	require.True(t, neg.Amount(sub).IsZero())
}

func TestDiscountUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	require.False(t, (*domain.Discount)(nil).Usable(now))
	require.False(t, (&domain.Discount{Active: false}).Usable(now))
	require.False(t, (&domain.Discount{Active: true, ExpiresAt: &past}).Usable(now))
	require.True(t, (&domain.Discount{Active: true}).Usable(now))
}

func TestProductNotFoundError_IsNotFound(t *testing.T) {
	var err error = &domain.ProductNotFoundError{ProductID: "p1"}
	require.True(t, errors.Is(err, domain.ErrNotFound))
	require.Contains(t, err.Error(), "p1")
}
