package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/parser"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
)

// ValidateResponse structure check result.
type ValidateResponse struct {
	Sheet     string                `json:"sheet"`
	Structure model.StructureReport `json:"structure"`
}

// ValidateReport checks whether an uploaded bank report carries the expected
// columns. Advisory only; a reconciliation over the same file would still
// proceed best-effort.
// POST /api/validate
func (h *Handler) ValidateReport(c *gin.Context) {
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

	c.JSON(http.StatusOK, ValidateResponse{
		Sheet:     table.SheetName,
		Structure: parser.ValidateStructure(table.Headers),
	})
}
