package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parcel/internal/service"
)

// ParcelHandler handles HTTP requests for parcels.
type ParcelHandler struct {
	parcelService *service.ParcelService
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelService *service.ParcelService) *ParcelHandler {
	return &ParcelHandler{parcelService: parcelService}
}

// CreateParcelResponse is the HTTP response for a created parcel.
type CreateParcelResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// List handles GET /parcels?email=
func (h *ParcelHandler) List(c *gin.Context) {
	parcels, err := h.parcelService.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondInternal(c, err, MessageResponse{Message: "Failed to get parcels"})
		return
	}

	c.JSON(http.StatusOK, parcels)
}

// Create handles POST /parcels
func (h *ParcelHandler) Create(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	id, err := h.parcelService.Create(c.Request.Context(), doc)
	if err != nil {
		respondInternal(c, err, CreateErrorResponse{
			Error:   "Failed to create parcel",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, CreateParcelResponse{
		Message: "Parcel created",
		ID:      id,
	})
}
