package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Booking requests slower than this get flagged separately
const slowRequestThreshold = 200 * time.Millisecond

// RequestTimer logs method, path, status and latency for every request.
func RequestTimer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		log.Printf("[barbershop] %s %s | status=%d | %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency)

		if latency > slowRequestThreshold {
			log.Printf("[barbershop] slow request: %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
