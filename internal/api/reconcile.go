package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/model"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/runlog"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/service/excel"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/store"
)

// ReconcileResponse reconciliation run result.
type ReconcileResponse struct {
	MatchedCount     int                   `json:"matchedCount"`
	DiscrepancyCount int                   `json:"discrepancyCount"`
	PrimaryCount     int                   `json:"primaryCount"`
	SecondaryCount   int                   `json:"secondaryCount"`
	Structure        model.StructureReport `json:"structure"`
	Discrepancies    []model.Discrepancy   `json:"discrepancies"`
	Warnings         []runlog.Warning      `json:"warnings"`
	DownloadURL      string                `json:"downloadUrl"`
}

// Reconcile runs the full pipeline over an uploaded card export (field
// "primary") and bank settlement report (field "secondary").
// POST /api/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	primaryFile, _, err := openUpload(c, "primary")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer primaryFile.Close()

	secondaryFile, _, err := openUpload(c, "secondary")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer secondaryFile.Close()

	opts, err := parseRunOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetSheet := c.PostForm("sheet")
	if targetSheet == "" {
		targetSheet = h.cfg.Recon.TargetSheet
	}

	log := runlog.FromLogger(h.logger)

	primary, err := excel.ReadSource(primaryFile, "", false, log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secondary, err := excel.ReadSource(secondaryFile, targetSheet, h.cfg.Recon.DetailedReport, log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := recon.Run(primary, secondary, opts, log)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondReconciliation(c, report)
}

// ReconcileAgainstReference runs the pipeline over an uploaded card export
// and the stored bank report reference snapshot.
// POST /api/reconcile/reference
func (h *Handler) ReconcileAgainstReference(c *gin.Context) {
	primaryFile, _, err := openUpload(c, "primary")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer primaryFile.Close()

	opts, err := parseRunOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.store.LoadReference()
	if err != nil {
		if err == store.ErrNoReference {
			c.JSON(http.StatusNotFound, gin.H{"error": "no reference snapshot stored"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference snapshot"})
		return
	}

	log := runlog.FromLogger(h.logger)

	primary, err := excel.ReadSource(primaryFile, "", false, log)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := recon.Convert(primary, recon.RunOptions{}, log)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report, err := recon.RunCanonical(conv.Rows, snapshot.Rows, opts, log)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.respondReconciliation(c, report)
}

func (h *Handler) respondReconciliation(c *gin.Context, report *recon.RunReport) {
	wb, err := excel.NewExporter().BuildReconciliation(report.Outcome)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export workbook"})
		return
	}

	downloadURL, err := h.stageExport(wb, "conciliacao.xlsx")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write export file"})
		return
	}

	c.JSON(http.StatusOK, ReconcileResponse{
		MatchedCount:     len(report.Outcome.Matched),
		DiscrepancyCount: len(report.Outcome.Discrepancies),
		PrimaryCount:     report.PrimaryCount,
		SecondaryCount:   report.SecondaryCount,
		Structure:        report.Structure,
		Discrepancies:    report.Outcome.Discrepancies,
		Warnings:         report.Warnings,
		DownloadURL:      downloadURL,
	})
}
