package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parcel/internal/domain"
	"parcel/internal/repository"
	"parcel/internal/service"
)

// errInvalidBody is returned when a request body is not a JSON object.
var errInvalidBody = errors.New("invalid request body")

// MessageResponse is the body of most non-2xx responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateErrorResponse is the body of a failed parcel creation.
type CreateErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// bindDocument decodes the request body into a document, answering 400 if it
// is not a JSON object.
func bindDocument(c *gin.Context) (domain.Document, bool) {
	var doc domain.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: errInvalidBody.Error()})
		return nil, false
	}
	return doc, true
}

// respondError answers client errors directly and leaves server errors to the
// error boundary middleware, which replies with a generic 500.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		return
	}
	c.JSON(code, MessageResponse{Message: err.Error()})
}

// respondInternal records err and answers 500 with a route-specific body.
func respondInternal(c *gin.Context, err error, body any) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, body)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrInvalidDocument),
		errors.Is(err, errInvalidBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
