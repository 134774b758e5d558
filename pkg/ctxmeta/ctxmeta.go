// Пакет ctxmeta — нейтральный слой для метаданных запроса в context.Context
// (request_id, пользователь, trace_id). HTTP-слой, сервисы и логгер зависят
// от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyUserID    ctxKey = "user_id"
	KeyUserRole  ctxKey = "user_role"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithUser — идентификатор и роль пользователя из токена; для гостя не вызывается.
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = withString(ctx, KeyUserID, userID)
	return withString(ctx, KeyUserRole, role)
}

// UserIDFromContext достаёт user_id из контекста.
func UserIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyUserID)
}

// UserRoleFromContext достаёт роль пользователя из контекста.
func UserRoleFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyUserRole)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
