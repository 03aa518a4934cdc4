package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RootMessage is the plain-text liveness string served at /.
const RootMessage = "Parcel Delivery Server is Running"

// Pinger checks the database connection.
type Pinger func(ctx context.Context) error

// RootHandler serves liveness and health endpoints.
type RootHandler struct {
	ping Pinger
}

// NewRootHandler creates a new RootHandler. A nil ping reports the database as up.
func NewRootHandler(ping Pinger) *RootHandler {
	return &RootHandler{ping: ping}
}

// HealthResponse is the HTTP response for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Root handles GET /
func (h *RootHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}

// Health handles GET /health
func (h *RootHandler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.ping(ctx); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "down"})
			return
		}
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}
