package memory

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// MinTTL — нижняя граница TTL: слишком маленькое значение из конфигурации не должно выключать кэш.
const MinTTL = time.Second

var _ ports.ResponseCache = (*ResponseCache)(nil)

type entry struct {
	status    int
	body      []byte
	headers   map[string]string
	expiresAt time.Time
}

// ResponseCache — кэш HTTP-ответов каталога в памяти процесса.
// Без ограничения размера и без фоновой очистки: записи удаляются только
// при чтении просроченного ключа или полной очисткой через Clear.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// Option — настройка кэша.
type Option func(*ResponseCache)

// WithClock — подменить источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(c *ResponseCache) {
		if now != nil {
			c.now = now
		}
	}
}

func NewResponseCache(opts ...Option) *ResponseCache {
	c := &ResponseCache{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get — сохранённый ответ для URL. Просроченная запись удаляется и считается промахом.
func (c *ResponseCache) Get(_ context.Context, u *url.URL) (*ports.CachedResponse, bool) {
	key := CanonicalKey(u)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	if now.After(ent.expiresAt) {
		delete(c.entries, key)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.entries)))
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return &ports.CachedResponse{
		Status:  ent.status,
		Body:    cloneBytes(ent.body),
		Headers: cloneHeaders(ent.headers),
	}, true
}

// Set — сохранить ответ; существующая запись по тому же ключу перезаписывается.
func (c *ResponseCache) Set(_ context.Context, u *url.URL, status int, body []byte, headers map[string]string, ttl time.Duration) {
	key := CanonicalKey(u)
	ent := &entry{
		status:    status,
		body:      cloneBytes(body),
		headers:   cloneHeaders(headers),
		expiresAt: c.now().Add(EffectiveTTL(ttl)),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = ent
	metrics.CacheOps.WithLabelValues("set").Inc()
	metrics.CacheSize.Set(float64(len(c.entries)))
}

// Clear — удалить все записи.
func (c *ResponseCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	metrics.CacheOps.WithLabelValues("cleared").Inc()
	metrics.CacheSize.Set(0)
}

// Len — число записей, включая ещё не прочитанные просроченные.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CanonicalKey — путь плюс query-параметры, отсортированные по имени, затем по значению.
// ?b=2&a=1 и ?a=1&b=2 дают один ключ.
func CanonicalKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	query := u.Query()
	if len(query) == 0 {
		return u.Path
	}

	pairs := make([][2]string, 0, len(query))
	for name, values := range query {
		for _, v := range values {
			pairs = append(pairs, [2]string{name, v})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	var b strings.Builder
	b.WriteString(u.Path)
	for i, p := range pairs {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}

// EffectiveTTL — TTL с учётом нижней границы MinTTL.
func EffectiveTTL(ttl time.Duration) time.Duration {
	if ttl < MinTTL {
		return MinTTL
	}
	return ttl
}

// ------вспомогательные функции------

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneHeaders(h map[string]string) map[string]string {
	if h == nil {
		return nil
	}
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
