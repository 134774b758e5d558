package rest

import (
	"net/http"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/gin-gonic/gin"
)

// createOrder — POST /api/orders. Доступно и гостям.
func (h *Handler) createOrder(c *gin.Context) {
	req, err := validate.DecodeOrderRequest(c.Request.Body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	order, err := h.orders.CreateOrder(ctx, req, claimsFrom(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// getOrder — GET /api/orders/:orderId. Чужой заказ неотличим от отсутствующего.
func (h *Handler) getOrder(c *gin.Context) {
	orderID := c.Param("orderId")

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	claims := claimsFrom(c)
	if order == nil || claims == nil || (!claims.IsAdmin() && claims.UserID != order.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// listMyOrders — GET /api/orders?limit=&offset= для владельца токена.
func (h *Handler) listMyOrders(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultPageLimit, maxPageLimit)

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	orders, err := h.orders.OrdersByUser(ctx, claimsFrom(c).UserID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// adminListOrders — GET /api/admin/orders?status=&page=&limit=
func (h *Handler) adminListOrders(c *gin.Context) {
	page := httpx.ParsePage(c, defaultPageLimit, maxPageLimit)
	page.Limited = true // список заказов всегда постраничный
	filter := domain.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	orders, total, err := h.orders.ListOrders(ctx, filter)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	httpx.SetHeaders(c, httpx.PaginationHeaders(page, total))
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, orders)
}

type statusBody struct {
	Status domain.OrderStatus `json:"status"`
}

// adminUpdateStatus — PATCH /api/admin/orders/:orderId/status
func (h *Handler) adminUpdateStatus(c *gin.Context) {
	var body statusBody
	if err := decodeStrict(c, &body); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}

	ctx, cancel := h.reqCtx(c)
	defer cancel()

	upd := domain.StatusUpdate{OrderID: c.Param("orderId"), Status: body.Status}
	if err := h.orders.UpdateStatus(ctx, upd); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": upd.OrderID, "status": upd.Status})
}

// getDiscount — GET /api/discounts/:code
func (h *Handler) getDiscount(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	d, err := h.orders.LookupDiscount(ctx, c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": d.Code, "kind": d.Kind, "value": d.Value})
}
