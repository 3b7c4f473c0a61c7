package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
)

// ConvertResponse conversion run result.
type ConvertResponse struct {
	RowCount    int              `json:"rowCount"`
	Warnings    []runlog.Warning `json:"warnings"`
	DownloadURL string           `json:"downloadUrl"`
}

// Convert converts an uploaded card export into the canonical dataset and
// stages the workbook for download.
// POST /api/convert
func (h *Handler) Convert(c *gin.Context) {
	file, _, err := openUpload(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	opts, err := parseRunOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log := runlog.FromLogger(h.logger)
	table, err := excel.ReadSource(file, c.PostForm("sheet"), false, log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := recon.Convert(table, opts, log)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	wb, err := excel.NewExporter().BuildDataset(report.Rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export workbook"})
		return
	}

	downloadURL, err := h.stageExport(wb, "dataset.xlsx")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export file"})
		return
	}

	c.JSON(http.StatusOK, ConvertResponse{
		RowCount:    len(report.Rows),
		Warnings:    report.Warnings,
		DownloadURL: downloadURL,
	})
}
