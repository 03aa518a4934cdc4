package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parcel/internal/repository"
	"parcel/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterResponse is the HTTP response for user registration.
type RegisterResponse struct {
	Message  string `json:"message,omitempty"`
	Inserted bool   `json:"inserted"`
	ID       string `json:"id,omitempty"`
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	res, err := h.userService.Register(c.Request.Context(), doc)
	if err != nil {
		respondError(c, err)
		return
	}

	if !res.Inserted {
		c.JSON(http.StatusOK, RegisterResponse{
			Message:  "User already exists",
			Inserted: false,
		})
		return
	}

	c.JSON(http.StatusOK, RegisterResponse{
		Inserted: true,
		ID:       res.ID,
	})
}

// GetByEmail handles GET /users/:email
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "User not found"})
		return
	}
	if err != nil {
		respondInternal(c, err, MessageResponse{Message: "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}
