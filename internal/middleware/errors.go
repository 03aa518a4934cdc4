package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InternalErrorMessage is the body message for any unhandled failure.
const InternalErrorMessage = "Internal server error"

// ErrorHandler answers 500 for any request whose handler recorded an error
// with c.Error but wrote no response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"message": InternalErrorMessage})
	}
}

// Recovery turns a panic into a 500 with the same body as ErrorHandler.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", GetRequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": InternalErrorMessage})
	})
}
