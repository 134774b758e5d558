package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// listProducts — GET /api/products?category=&featured=&q=&page=&limit=&includeInactive=
func (h *Handler) listProducts(c *gin.Context) {
	claims := claimsFrom(c)

	includeInactive, err := optionalBool(c, "includeInactive")
	if err != nil {
		badRequest(c, "includeInactive must be a boolean")
		return
	}
	if includeInactive != nil && *includeInactive && !claims.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	featured, err := optionalBool(c, "featured")
	if err != nil {
		badRequest(c, "featured must be a boolean")
		return
	}

	page := httpx.ParsePage(c, defaultPageLimit, maxPageLimit)
	filter := domain.ProductFilter{
		Category:        c.Query("category"),
		Featured:        featured,
		Search:          c.Query("q"),
		IncludeInactive: includeInactive != nil && *includeInactive,
	}
	// без page и limit отдаётся весь каталог
	if page.Bounded() {
		filter.Limit, filter.Offset = page.Limit, page.Offset()
	}

	bypass := filter.IncludeInactive || claims.IsAdmin()
	h.serveCached(c, h.ttl.List, bypass, func(ctx context.Context) (any, map[string]string, error) {
		products, total, err := h.catalog.ListProducts(ctx, filter)
		if err != nil {
			return nil, nil, err
		}
		if products == nil {
			products = []*domain.Product{}
		}
		return products, httpx.PaginationHeaders(page, total), nil
	})
}

// getProduct — GET /api/products/:id. Неактивные товары видит только администратор.
func (h *Handler) getProduct(c *gin.Context) {
	id := c.Param("id")
	admin := claimsFrom(c).IsAdmin()

	h.serveCached(c, h.ttl.Detail, admin, func(ctx context.Context) (any, map[string]string, error) {
		p, err := h.catalog.GetProduct(ctx, id, admin)
		return p, nil, err
	})
}

func (h *Handler) createProduct(c *gin.Context) {
	var p domain.Product
	if err := decodeStrict(c, &p); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	created, err := h.catalog.CreateProduct(ctx, &p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var p domain.Product
	if err := decodeStrict(c, &p); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}
	p.ID = c.Param("id")

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	updated, err := h.catalog.UpdateProduct(ctx, &p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.catalog.DeleteProduct(ctx, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// optionalBool — булев query-параметр; nil, если параметра нет.
func optionalBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeStrict — JSON тела без неизвестных полей.
func decodeStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
