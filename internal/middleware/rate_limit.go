package middleware

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit allows rps requests per second per client IP as resolved by
// c.ClientIP, so forwarding headers only count when the engine trusts the
// proxy that sent them. A non-positive rps returns a pass-through handler.
func RateLimit(rps float64, logger *zap.Logger) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	lmt := tollbooth.NewLimiter(rps, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if httpErr := tollbooth.LimitByKeys(lmt, []string{clientIP}); httpErr != nil {
			logger.Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
