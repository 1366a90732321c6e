package handlers

import (
	"errors"
	"io"
	"net/http"

	"deck-thumbnail-service/internal/adapters/primary/http/dto"
	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/editor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const logoFormField = "logo"

func getSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

func getQuadrant(c *gin.Context) (domain.Quadrant, bool) {
	q, err := domain.ParseQuadrant(c.Param("q"))
	if err != nil {
		mapDomainError(c, err)
		return 0, false
	}
	return q, true
}

func respondSession(c *gin.Context, sess *editor.Session, err error, op string) {
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.WithError(err).Error(op + " failed")
		}
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}

// ============================================================================
// Sessions
// ============================================================================

func (h *Handler) CreateSession(c *gin.Context) {
	sess, err := h.editorSvc.Create(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("create session failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(sess))
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	sess, err := h.editorSvc.Get(c.Request.Context(), id)
	respondSession(c, sess, err, "get session")
}

func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	if err := h.editorSvc.Delete(c.Request.Context(), id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) GetSessionLayout(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	l, err := h.editorSvc.Layout(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, l)
}

func (h *Handler) SetDeckNames(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.SetDeckNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.SetDeckNames(c.Request.Context(), id, req.LeftDeck, req.RightDeck)
	respondSession(c, sess, err, "set deck names")
}

func (h *Handler) ChangeMode(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.ChangeModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	sess, err := h.editorSvc.ChangeMode(c.Request.Context(), id, mode)
	respondSession(c, sess, err, "change mode")
}

func (h *Handler) SetStreamInfo(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.SetStreamInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.SetStreamInfo(c.Request.Context(), id, req.StreamDate, req.EventName)
	respondSession(c, sess, err, "set stream info")
}

// ============================================================================
// Quadrants
// ============================================================================

func (h *Handler) SelectCard(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	q, ok := getQuadrant(c)
	if !ok {
		return
	}

	var req dto.SelectCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.SelectCard(c.Request.Context(), id, q, req.CardName)
	respondSession(c, sess, err, "select card")
}

func (h *Handler) Drag(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	q, ok := getQuadrant(c)
	if !ok {
		return
	}

	var req dto.DragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.Drag(c.Request.Context(), id, q, req.DX, req.DY)
	respondSession(c, sess, err, "drag")
}

func (h *Handler) Zoom(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	q, ok := getQuadrant(c)
	if !ok {
		return
	}

	var req dto.ZoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.Zoom(c.Request.Context(), id, q, req.X, req.Y, req.Notches)
	respondSession(c, sess, err, "zoom")
}

func (h *Handler) ClearSlot(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	q, ok := getQuadrant(c)
	if !ok {
		return
	}

	sess, err := h.editorSvc.ClearSlot(c.Request.Context(), id, q)
	respondSession(c, sess, err, "clear slot")
}

func (h *Handler) SelectArt(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.SelectArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.SelectArt(c.Request.Context(), id, req.PrintID)
	respondSession(c, sess, err, "select art")
}

func (h *Handler) CloseDialog(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	sess, err := h.editorSvc.CloseDialog(c.Request.Context(), id)
	respondSession(c, sess, err, "close dialog")
}

func (h *Handler) SwapQuadrants(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.SwapQuadrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := domain.ParseQuadrant(req.A)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	b, err := domain.ParseQuadrant(req.B)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	sess, err := h.editorSvc.SwapQuadrants(c.Request.Context(), id, a, b)
	respondSession(c, sess, err, "swap quadrants")
}

// ============================================================================
// Logo
// ============================================================================

func (h *Handler) UploadLogo(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fh, err := c.FormFile(logoFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo exceeds upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"logo\" is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.UploadLogo(c.Request.Context(), id, data)
	respondSession(c, sess, err, "upload logo")
}

func (h *Handler) ClearLogo(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	sess, err := h.editorSvc.ClearLogo(c.Request.Context(), id)
	respondSession(c, sess, err, "clear logo")
}

func (h *Handler) SetLogoOverrides(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	var req dto.LogoOverridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.editorSvc.SetLogoOverrides(c.Request.Context(), id, dto.ToLogoOverrides(&req))
	respondSession(c, sess, err, "set logo overrides")
}

// ============================================================================
// Export
// ============================================================================

func (h *Handler) ExportSession(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}

	res, err := h.editorSvc.Export(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Error("export session failed")
		mapDomainError(c, err)
		return
	}

	writeDownload(c, res)
}
