package ports

import (
	"context"
	"net/url"
	"time"
)

// CachedResponse — сохранённый HTTP-ответ.
type CachedResponse struct {
	Status  int
	Body    []byte
	Headers map[string]string
}

// ResponseCache — серверный кэш ответов каталога.
// Ключ строится из пути и отсортированных query-параметров.
// Реализация обязана отдавать копии: сохранённые данные не должны меняться снаружи.
type ResponseCache interface {
	Get(ctx context.Context, u *url.URL) (*CachedResponse, bool)
	Set(ctx context.Context, u *url.URL, status int, body []byte, headers map[string]string, ttl time.Duration)
	Clear(ctx context.Context)
}
