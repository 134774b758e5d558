package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// DecodeOrderRequest — строгий разбор JSON запроса заказа: неизвестные поля и хвост после объекта запрещены.
func DecodeOrderRequest(r io.Reader) (*domain.CreateOrderRequest, error) {
	var req domain.CreateOrderRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	return &req, nil
}

// ValidateOrderFromJSON — разбор и валидация запроса заказа из JSON.
func ValidateOrderFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.CreateOrderRequest, error) {
	req, err := DecodeOrderRequest(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
