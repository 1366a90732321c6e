package handlers

import (
	"net/http"

	"deck-thumbnail-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Autocomplete(c *gin.Context) {
	names := h.cardSvc.Autocomplete(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, dto.AutocompleteResponse{Items: names})
}

func (h *Handler) SearchArts(c *gin.Context) {
	opts, err := h.cardSvc.SearchAnnotatedArts(c.Request.Context(), c.Query("name"))
	if err != nil {
		log.WithError(err).Error("search arts failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListArtOptionsResponse(opts))
}

// ProxyImage streams an allow-listed image. Fetched URLs never change, so
// clients may cache the response.
func (h *Handler) ProxyImage(c *gin.Context) {
	blob, err := h.imageSvc.Fetch(c.Request.Context(), c.Query("url"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "public, max-age=86400, immutable")
	c.Data(http.StatusOK, contentType, blob.Data)
}
