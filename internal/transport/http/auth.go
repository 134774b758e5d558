package rest

import (
	"net/http"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// authenticate — разбирает bearer-токен. Отсутствующий или невалидный токен не ошибка:
// запрос продолжается как гостевой.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" || h.tokens == nil {
			c.Next()
			return
		}

		claims, err := h.tokens.Decode(token)
		if err != nil {
			h.log.Warnf(c.Request.Context(), "bearer token rejected, continue as guest: %v", err)
			c.Next()
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(ctxmeta.WithUser(c.Request.Context(), claims.UserID, claims.Role))
		c.Next()
	}
}

// requireUser — только для запросов с валидным токеном.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claimsFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// requireAdmin — только для администраторов.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		switch {
		case claims == nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case !claims.IsAdmin():
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		default:
			c.Next()
		}
	}
}

// claimsFrom — данные токена текущего запроса; nil для гостя.
func claimsFrom(c *gin.Context) *domain.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*domain.Claims)
	return claims
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
