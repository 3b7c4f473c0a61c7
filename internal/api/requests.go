package api

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/normalize"
	"github.com/lucasbirlem/financeiro-unirad-69/internal/recon"
)

const downloadTTL = 10 * time.Minute

// openUpload opens the uploaded file under the given form field.
func openUpload(c *gin.Context, field string) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("missing uploaded file %q", field)
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file %q", field)
	}
	return f, header, nil
}

// parseRunOptions reads the optional date-range form fields. Dates use the
// dd/mm/yyyy display format. Both bounds must be present for the range to
// apply.
func parseRunOptions(c *gin.Context) (recon.RunOptions, error) {
	opts := recon.RunOptions{DateField: recon.BySaleDate}
	if c.PostForm("dateField") == "due" {
		opts.DateField = recon.ByDueDate
	}

	start := c.PostForm("startDate")
	end := c.PostForm("endDate")
	if start == "" && end == "" {
		return opts, nil
	}
	if start == "" || end == "" {
		return opts, fmt.Errorf("both startDate and endDate are required for a date filter")
	}

	startT, ok := normalize.DateTime(start)
	if !ok {
		return opts, fmt.Errorf("invalid startDate %q", start)
	}
	endT, ok := normalize.DateTime(end)
	if !ok {
		return opts, fmt.Errorf("invalid endDate %q", end)
	}

	opts.StartDate = startT
	opts.EndDate = endT
	return opts, nil
}

// stageExport writes a built workbook to a temp file and registers it with
// the one-shot download store, returning the relative download URL.
func (h *Handler) stageExport(f *excelize.File, filename string) (string, error) {
	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("financeiro_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := f.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}

	token := h.downloads.put(tempPath, filename, downloadTTL)
	return "/api/export/download/" + token, nil
}

// DownloadExport serves a staged export file once.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "export file no longer exists"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
