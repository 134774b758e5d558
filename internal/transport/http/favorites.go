package rest

import (
	"net/http"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listFavorites(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	products, err := h.favorites.List(ctx, claimsFrom(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) addFavorite(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.favorites.Add(ctx, claimsFrom(c).UserID, c.Param("productId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) removeFavorite(c *gin.Context) {
	ctx, cancel := h.reqCtx(c)
	defer cancel()

	if err := h.favorites.Remove(ctx, claimsFrom(c).UserID, c.Param("productId")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
