// Package auth — проверка bearer-токенов, выпущенных внешней системой аутентификации.
package auth

import (
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

var _ ports.TokenDecoder = (*JWTDecoder)(nil)

var (
	// ErrInvalidToken — подпись, срок или содержимое токена не прошли проверку.
	ErrInvalidToken = errors.New("invalid token")
	// ErrNoSecret — секрет не настроен: любой токен считается невалидным.
	ErrNoSecret = errors.New("token secret is not configured")
)

// tokenClaims — полезная нагрузка токена.
type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTDecoder — HS256-токены с общим секретом.
type JWTDecoder struct {
	secret []byte
	issuer string
}

func NewJWTDecoder(secret, issuer string) *JWTDecoder {
	return &JWTDecoder{secret: []byte(secret), issuer: issuer}
}

// Decode — проверка подписи и срока действия; userId берётся из claim userId или sub.
func (d *JWTDecoder) Decode(raw string) (*domain.Claims, error) {
	if len(d.secret) == 0 {
		return nil, ErrNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if d.issuer != "" {
		opts = append(opts, jwt.WithIssuer(d.issuer))
	}

	var tc tokenClaims
	if _, err := jwt.ParseWithClaims(raw, &tc, func(*jwt.Token) (any, error) { return d.secret, nil }, opts...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := tc.UserID
	if userID == "" {
		userID = tc.Subject
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return &domain.Claims{UserID: userID, Email: tc.Email, Role: tc.Role}, nil
}

// Sign — выпуск токена тем же секретом. Нужен тестам и локальной отладке;
// в проде токены выпускает система аутентификации.
func (d *JWTDecoder) Sign(c domain.Claims, expiresAt jwt.NumericDate) (string, error) {
	if len(d.secret) == 0 {
		return "", ErrNoSecret
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    d.issuer,
			ExpiresAt: &expiresAt,
		},
	})
	return tok.SignedString(d.secret)
}
