package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// loadFunc — построение живого ответа: тело и дополнительные заголовки.
type loadFunc func(ctx context.Context) (any, map[string]string, error)

// serveCached — ответ из кэша по URL запроса, иначе load и сохранение на ttl.
// bypass: ответ строится заново и в кэш не попадает (админ, includeInactive).
// Браузеру всегда отдаётся Cache-Control: no-store, кэш только серверный.
func (h *Handler) serveCached(c *gin.Context, ttl time.Duration, bypass bool, load loadFunc) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	c.Header("Cache-Control", "no-store")

	if bypass {
		metrics.CacheOps.WithLabelValues("bypass").Inc()
	} else if cached, ok := h.cache.Get(ctx, c.Request.URL); ok {
		httpx.SetHeaders(c, cached.Headers)
		c.Data(cached.Status, jsonContentType, cached.Body)
		return
	}

	payload, headers, err := load(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpx.SetHeaders(c, headers)

	body, err := json.Marshal(payload)
	if err != nil {
		h.writeError(c, fmt.Errorf("marshal response: %w", err))
		return
	}
	if !bypass {
		h.cache.Set(ctx, c.Request.URL, http.StatusOK, body, headers, ttl)
	}
	c.Data(http.StatusOK, jsonContentType, body)
}
