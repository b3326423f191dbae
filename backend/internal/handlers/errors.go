package handlers

import (
	"errors"
	"log"
	"net/http"

	"housing-manager/backend/internal/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service failure taxonomy onto HTTP. Anything
// outside the taxonomy is a 500 with the detail kept server-side.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have access to this resource"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Reason})
	default:
		log.Printf("unhandled service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
