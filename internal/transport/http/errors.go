package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/gin-gonic/gin"
)

// writeError — перевод ошибок сервисов в HTTP-ответ {"error": "..."}.
// Внутренние подробности хранилища наружу не уходят.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		stockErr    *domain.InsufficientStockError
		notFoundErr *domain.ProductNotFoundError
	)

	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": stockErr.Error(),
			"details": gin.H{
				"productId":   stockErr.ProductID,
				"productName": stockErr.ProductName,
				"size":        stockErr.Size,
				"available":   stockErr.Available,
				"requested":   stockErr.Requested,
			},
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, validate.ErrInvalidOrder),
		errors.Is(err, validate.ErrInvalidProduct),
		errors.Is(err, validate.ErrInvalidStatusUpdate),
		errors.Is(err, domain.ErrInvalidDiscount),
		errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStoreMisconfigured):
		h.log.Errorf(c.Request.Context(), "store rejected write: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "configuration error, contact support"})
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(c.Request.Context(), "handler timeout: %v", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timeout"})
	default:
		h.log.Errorf(c.Request.Context(), "request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
