package middleware

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	internalRedis "parcel/internal/redis"
)

const idempotencyHeader = "Idempotency-Key"

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response for POST requests that
// repeat an Idempotency-Key. A nil store disables it.
func IdempotencyMiddleware(store internalRedis.IdempotencyStoreInterface, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		header := c.GetHeader(idempotencyHeader)
		if header == "" {
			c.Next()
			return
		}
		key := idempotencyKey(c, header)

		ctx := c.Request.Context()

		cached, err := store.Get(ctx, key)
		if err != nil {
			// Redis trouble must not block writes.
			log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, "application/json; charset=utf-8", cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Unanswered errors are finished by ErrorHandler further out.
		status := c.Writer.Status()
		if len(c.Errors) > 0 || !c.Writer.Written() || status < 200 || status >= 500 {
			return
		}

		resp := &internalRedis.CachedResponse{
			StatusCode: status,
			Body:       w.body.Bytes(),
			Headers:    extractResponseHeaders(c),
		}
		if err := store.Set(ctx, key, resp); err != nil {
			log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency store failed")
		}
	}
}

// idempotencyKey scopes a client key to the route it was sent to, so reusing
// a key on another endpoint does not replay a foreign response.
func idempotencyKey(c *gin.Context, header string) string {
	return c.Request.Method + " " + c.FullPath() + ":" + header
}

// extractResponseHeaders keeps only the headers worth replaying.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
