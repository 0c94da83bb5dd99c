package v1

import (
	"net/http"
	"time"

	"payme/api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

const DEFAULT_LIMIT = 150
const EXPIRATION_SECONDS = 30

// returns true if rate limit is exceeded
func invoiceRateLimit(apiKey string, limit int) bool {
	var expiration = time.Second * time.Duration(EXPIRATION_SECONDS)

	count := cache.InvoiceRateLimitsCache.LoadOrSet(apiKey, 1, expiration)
	if count == nil {
		return true
	}

	countInt, ok := count.(int)
	if !ok {
		return true
	}

	if countInt > limit {
		return true
	}

	cache.InvoiceRateLimitsCache.Set(apiKey, countInt+1, expiration)
	return false
}

func (h *Handler) adminAccessMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.config.Api.AdminKey == "" || h.config.Api.AdminKey != c.Request.Header.Get("Access") {
			responseErr(c, http.StatusUnauthorized, "access denied", "")
			c.Abort()
			return
		}
		c.Next()
	}
}
