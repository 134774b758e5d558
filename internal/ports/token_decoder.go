package ports

import "github.com/Gunvolt24/storefront/internal/domain"

// TokenDecoder — проверка bearer-токена; ошибка для невалидного/просроченного токена.
type TokenDecoder interface {
	Decode(token string) (*domain.Claims, error)
}
