package handlers

import (
	"net/http"

	"deck-thumbnail-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SearchDeckNames(c *gin.Context) {
	names := h.ledgerSvc.SearchDeckNames(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, dto.ToListDeckNamesResponse(names))
}

func (h *Handler) UpsertDeckName(c *gin.Context) {
	var req dto.UpsertDeckNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledgerSvc.RecordDeckName(c.Request.Context(), req.Name); err != nil {
		log.WithError(err).Error("upsert deck name failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) UpsertArtUsage(c *gin.Context) {
	var req dto.UpsertArtUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.ledgerSvc.RecordArtUsage(c.Request.Context(), req.ArtURL, req.CardID); err != nil {
		log.WithError(err).Error("upsert art usage failed")
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) LookupArtUsage(c *gin.Context) {
	var req dto.LookupArtUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs := h.ledgerSvc.LookupArtUsage(c.Request.Context(), req.URLs)
	c.JSON(http.StatusOK, dto.ToLookupArtUsageResponse(recs))
}
