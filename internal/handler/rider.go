package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parcel/internal/service"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riderService *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderService *service.RiderService) *RiderHandler {
	return &RiderHandler{riderService: riderService}
}

// Create handles POST /riders
func (h *RiderHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	res, err := h.riderService.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
