package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Заголовки постраничной выдачи.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderLimit      = "X-Limit"
	HeaderTotalPages = "X-Total-Pages"
)

// ClampInt — ограничение значения v в диапазоне [min, max].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimitOffset - читает limit/offset из query с дефолтами и границами.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}
	return
}

// Page — параметры постраничного запроса.
// Paged — в запросе был page; Limited — в запросе был корректный limit.
type Page struct {
	Number  int
	Limit   int
	Paged   bool
	Limited bool
}

// Bounded — запрос ограничен страницей или явным limit.
func (p Page) Bounded() bool { return p.Paged || p.Limited }

// Offset — смещение первой записи страницы.
func (p Page) Offset() int { return (p.Number - 1) * p.Limit }

// ParsePage — page (с 1) и limit из query; некорректные значения заменяются дефолтами.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) Page {
	p := Page{Number: 1, Limit: ClampInt(defaultLimit, 1, maxLimit)}
	if raw, ok := c.GetQuery("page"); ok {
		p.Paged = true
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Number = v
		}
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		p.Limit = ClampInt(v, 1, maxLimit)
		p.Limited = true
	}
	return p
}

// TotalPages — число страниц для total записей (минимум 1).
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// PaginationHeaders — заголовки X-Total-Count/X-Page/X-Limit/X-Total-Pages; nil, если выборка не ограничена.
func PaginationHeaders(p Page, total int) map[string]string {
	if !p.Bounded() {
		return nil
	}
	return map[string]string{
		HeaderTotalCount: strconv.Itoa(total),
		HeaderPage:       strconv.Itoa(p.Number),
		HeaderLimit:      strconv.Itoa(p.Limit),
		HeaderTotalPages: strconv.Itoa(TotalPages(total, p.Limit)),
	}
}

// SetHeaders — выставляет набор заголовков ответа.
func SetHeaders(c *gin.Context, headers map[string]string) {
	for k, v := range headers {
		c.Header(k, v)
	}
}
