package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/config"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/store"
)

// Handler API handler.
type Handler struct {
	store     *store.Store
	cfg       *config.AppConfig
	logger    zerolog.Logger
	downloads *exportDownloadStore
}

// NewHandler creates the API handler.
func NewHandler(st *store.Store, cfg *config.AppConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		logger:    logger,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status
	router.GET("/status", h.GetStatus)

	// structure check
	router.POST("/validate", h.ValidateReport)

	// card export conversion
	router.POST("/convert", h.Convert)

	// reconciliation
	router.POST("/reconcile", h.Reconcile)
	router.POST("/reconcile/reference", h.ReconcileAgainstReference)

	// bank report reference snapshot
	router.GET("/reference", h.GetReference)
	router.POST("/reference", h.SaveReference)

	// export download
	router.GET("/export/download/:token", h.DownloadExport)
}
