package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AccessLog logs each request's method, path, status and duration using the
// request-scoped logger. When RequireJWT verified the caller, the token
// subject is logged; the Authorization header itself never is.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := zerolog.Ctx(c.Request.Context())
		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Str("client_ip", c.ClientIP()).
			Dur("duration", time.Since(start))
		if sub, err := GetClaims(c).GetSubject(); err == nil && sub != "" {
			event.Str("subject", sub)
		}
		event.Msg("request")
	}
}
