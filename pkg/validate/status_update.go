package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// ErrInvalidStatusUpdate — сообщение о смене статуса не разобрано или не прошло проверку.
var ErrInvalidStatusUpdate = errors.New("invalid status update")

// DecodeStatusUpdate — строгий разбор {"orderId": "...", "status": "..."}.
func DecodeStatusUpdate(raw []byte) (domain.StatusUpdate, error) {
	var upd domain.StatusUpdate
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&upd); err != nil {
		return upd, fmt.Errorf("%w: invalid json: %v", ErrInvalidStatusUpdate, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return upd, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidStatusUpdate)
	}
	return upd, ValidateStatusUpdate(upd)
}

// ValidateStatusUpdate — номер заказа задан, статус из известного набора.
func ValidateStatusUpdate(upd domain.StatusUpdate) error {
	if strings.TrimSpace(upd.OrderID) == "" {
		return fmt.Errorf("%w: orderId is required", ErrInvalidStatusUpdate)
	}
	if !upd.Status.Valid() {
		return fmt.Errorf("%w: %w %q", ErrInvalidStatusUpdate, domain.ErrInvalidStatus, upd.Status)
	}
	return nil
}
