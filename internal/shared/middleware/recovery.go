package middleware

import (
	"net/http"
	"runtime/debug"

	"storefront-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Recovery turns a panic in a handler into a 500 envelope. The device's
// session lock is released by SessionMiddleware's deferred unlock.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(ContextKeyRequestID)).
					Str("session_id", GetSessionID(c)).
					Str("route", c.FullPath()).
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
