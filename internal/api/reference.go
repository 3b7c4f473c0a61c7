package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/parser"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/store"
)

// ReferenceResponse snapshot metadata. Rows stay server-side.
type ReferenceResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	RowCount  int              `json:"rowCount"`
	Warnings  []runlog.Warning `json:"warnings,omitempty"`
}

// GetReference returns the stored snapshot metadata.
// GET /api/reference
func (h *Handler) GetReference(c *gin.Context) {
	snapshot, err := h.store.LoadReference()
	if err != nil {
		if err == store.ErrNoReference {
			c.JSON(http.StatusNotFound, gin.H{"error": "no reference snapshot stored"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference snapshot"})
		return
	}

	c.JSON(http.StatusOK, ReferenceResponse{
		ID:        snapshot.ID,
		CreatedAt: snapshot.CreatedAt,
		RowCount:  len(snapshot.Rows),
	})
}

// SaveReference maps an uploaded bank settlement report into canonical rows
// and stores it as the new reference snapshot, replacing any previous one.
// POST /api/reference
func (h *Handler) SaveReference(c *gin.Context) {
	file, _, err := openUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	targetSheet := c.PostForm("sheet")
	if targetSheet == "" {
		targetSheet = h.cfg.Recon.TargetSheet
	}

	log := runlog.FromLogger(h.logger)
	table, err := excel.ReadSource(file, targetSheet, h.cfg.Recon.DetailedReport, log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := parser.MapReport(table, log)
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no transactional rows found in the report"})
		return
	}

	snapshot, err := h.store.SaveReference(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reference snapshot"})
		return
	}

	c.JSON(http.StatusOK, ReferenceResponse{
		ID:        snapshot.ID,
		CreatedAt: snapshot.CreatedAt,
		RowCount:  len(snapshot.Rows),
		Warnings:  log.Warnings(),
	})
}
