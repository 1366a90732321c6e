package handlers

import (
	"errors"
	"net/http"

	"deck-thumbnail-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	var imgErr *domain.ImageError
	if errors.As(err, &imgErr) {
		mapImageError(c, imgErr)
		return
	}

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidDeckName),
		errors.Is(err, domain.ErrInvalidArtURL),
		errors.Is(err, domain.ErrInvalidCardID),
		errors.Is(err, domain.ErrInvalidCardName),
		errors.Is(err, domain.ErrInvalidQuadrant),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrNoArtSelected),
		errors.Is(err, domain.ErrInvalidLogo),
		errors.Is(err, domain.ErrDialogNotOpen),
		errors.Is(err, domain.ErrArtNotInDialog):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Upstream errors
	case errors.Is(err, domain.ErrUpstream),
		errors.Is(err, domain.ErrInvalidArt):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func mapImageError(c *gin.Context, err *domain.ImageError) {
	status := http.StatusBadGateway
	switch err.Reason {
	case domain.ImageReasonInvalidURL, domain.ImageReasonDisallowedDomain:
		status = http.StatusBadRequest
	case domain.ImageReasonTooLarge:
		status = http.StatusRequestEntityTooLarge
	case domain.ImageReasonTimeout:
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, gin.H{"error": err.Error(), "reason": string(err.Reason)})
}
