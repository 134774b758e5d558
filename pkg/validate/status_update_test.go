package validate_test

import (
	"errors"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/stretchr/testify/require"
)

func TestDecodeStatusUpdate(t *testing.T) {
	upd, err := validate.DecodeStatusUpdate([]byte(`{"orderId":"ORD-1-AB","status":"shipped"}`))
	require.NoError(t, err)
	require.Equal(t, "ORD-1-AB", upd.OrderID)
	require.Equal(t, domain.OrderStatusShipped, upd.Status)

	bad := []string{
		`{`,
		`{"orderId":"x","status":"shipped","extra":1}`,
		`{"orderId":"","status":"shipped"}`,
		`{"orderId":"x","status":"lost"}`,
		`{"orderId":"x","status":"shipped"}{}`,
	}
	for _, raw := range bad {
		_, err := validate.DecodeStatusUpdate([]byte(raw))
		require.Error(t, err, raw)
		require.True(t, errors.Is(err, validate.ErrInvalidStatusUpdate), raw)
	}

	_, err = validate.DecodeStatusUpdate([]byte(`{"orderId":"x","status":"lost"}`))
	require.True(t, errors.Is(err, domain.ErrInvalidStatus))
}
