package handlers

import (
	"fmt"
	"net/http"

	"deck-thumbnail-service/internal/adapters/primary/http/dto"
	"deck-thumbnail-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ComputeLayout(c *gin.Context) {
	var req dto.ThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := dto.ToThumbnail(&req)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	l, err := h.thumbnailSvc.Layout(c.Request.Context(), t)
	if err != nil {
		log.WithError(err).Error("compute layout failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *Handler) RenderThumbnail(c *gin.Context) {
	var req dto.ThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := dto.ToThumbnail(&req)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	res, err := h.thumbnailSvc.Export(c.Request.Context(), t)
	if err != nil {
		log.WithError(err).Error("render thumbnail failed")
		mapDomainError(c, err)
		return
	}

	writeDownload(c, res)
}

func writeDownload(c *gin.Context, res *services.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Data(http.StatusOK, res.ContentType, res.Data)
}
