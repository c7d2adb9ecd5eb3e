package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Stepheeeen/impressa/internal/adapter/backend"
	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

// respondError maps usecase/domain errors onto HTTP statuses. Backend errors
// keep their status where it makes sense (401 passes through so the client
// can re-login); everything else is a 502 because the upstream misbehaved.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
	case errors.Is(err, domain.ErrIncompleteAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "incomplete_address", "message": "country, state, address and phone are all required"})
	case errors.Is(err, domain.ErrUnknownShippingMethod):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_shipping_method"})
	case errors.Is(err, usecase.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "empty_cart"})
	case errors.Is(err, usecase.ErrAuthorizationBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": "authorization_blocked", "message": "payment window could not be opened; retry checkout"})
	case errors.Is(err, usecase.ErrPaymentInit):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment_init_failed"})
	case errors.Is(err, usecase.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "payment_not_found"})
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusUnauthorized, http.StatusForbidden:
				c.JSON(apiErr.Status, gin.H{"error": "backend_rejected", "message": apiErr.Message})
			case http.StatusNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			case http.StatusBadRequest:
				c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": apiErr.Message})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": "backend_error"})
			}
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend_unreachable"})
	}
}
