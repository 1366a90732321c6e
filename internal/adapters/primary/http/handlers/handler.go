package handlers

import (
	"deck-thumbnail-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

const defaultMaxUploadBytes = 5 << 20

type Handler struct {
	ledgerSvc    *services.UsageLedgerService
	cardSvc      *services.CardService
	imageSvc     *services.ImageProxyService
	thumbnailSvc *services.ThumbnailService
	editorSvc    *services.EditorService

	maxUploadBytes int64
}

func New(
	ledgerSvc *services.UsageLedgerService,
	cardSvc *services.CardService,
	imageSvc *services.ImageProxyService,
	thumbnailSvc *services.ThumbnailService,
	editorSvc *services.EditorService,
	maxUploadBytes int64,
) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{
		ledgerSvc:      ledgerSvc,
		cardSvc:        cardSvc,
		imageSvc:       imageSvc,
		thumbnailSvc:   thumbnailSvc,
		editorSvc:      editorSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Card Art Source
	r.GET("/cards/autocomplete", h.Autocomplete)
	r.GET("/cards/arts", h.SearchArts)
	r.GET("/images", h.ProxyImage)

	// Usage Ledger
	r.GET("/deck_names", h.SearchDeckNames)
	r.POST("/deck_names", h.UpsertDeckName)
	r.POST("/art_usage", h.UpsertArtUsage)
	r.POST("/art_usage/lookup", h.LookupArtUsage)

	// Stateless Layout and Export
	r.POST("/layout", h.ComputeLayout)
	r.POST("/thumbnails", h.RenderThumbnail)

	// Editor Sessions
	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions/:id", h.GetSession)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.GET("/sessions/:id/layout", h.GetSessionLayout)
	r.PUT("/sessions/:id/deck_names", h.SetDeckNames)
	r.PUT("/sessions/:id/mode", h.ChangeMode)
	r.PUT("/sessions/:id/stream", h.SetStreamInfo)

	// Editor Quadrants
	r.POST("/sessions/:id/quadrants/:q/card", h.SelectCard)
	r.POST("/sessions/:id/quadrants/:q/drag", h.Drag)
	r.POST("/sessions/:id/quadrants/:q/zoom", h.Zoom)
	r.DELETE("/sessions/:id/quadrants/:q", h.ClearSlot)
	r.POST("/sessions/:id/dialog", h.SelectArt)
	r.DELETE("/sessions/:id/dialog", h.CloseDialog)
	r.POST("/sessions/:id/swap", h.SwapQuadrants)

	// Editor Logo
	r.POST("/sessions/:id/logo", h.UploadLogo)
	r.DELETE("/sessions/:id/logo", h.ClearLogo)
	r.PUT("/sessions/:id/logo/overrides", h.SetLogoOverrides)

	// Editor Export
	r.POST("/sessions/:id/export", h.ExportSession)
}
