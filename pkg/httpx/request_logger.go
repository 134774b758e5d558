package httpx

import (
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов.
// request_id, user_id и trace_id добавляет логгер из контекста запроса.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log.Infof(
			c.Request.Context(),
			"request method=%s path=%s query=%q status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Request.URL.RawQuery,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
