package rest

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

// CacheTTL — время жизни закэшированных ответов каталога.
type CacheTTL struct {
	List   time.Duration
	Detail time.Duration
}

// Deps — зависимости HTTP-слоя.
type Deps struct {
	Catalog   ports.CatalogService
	Orders    ports.OrderService
	Favorites ports.FavoriteService
	Cache     ports.ResponseCache
	Tokens    ports.TokenDecoder // nil — все запросы гостевые
	Log       ports.Logger
	Timeout   time.Duration // 0 — без ограничения
	TTL       CacheTTL
}

type Handler struct {
	catalog   ports.CatalogService
	orders    ports.OrderService
	favorites ports.FavoriteService
	cache     ports.ResponseCache
	tokens    ports.TokenDecoder
	log       ports.Logger
	timeout   time.Duration
	ttl       CacheTTL
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		catalog:   d.Catalog,
		orders:    d.Orders,
		favorites: d.Favorites,
		cache:     d.Cache,
		tokens:    d.Tokens,
		log:       d.Log,
		timeout:   d.Timeout,
		ttl:       d.TTL,
	}
}

// reqCtx — контекст запроса с таймаутом обработчика.
func (h *Handler) reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
