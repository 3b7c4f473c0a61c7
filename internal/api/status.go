package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucasbirlem/financeiro-unirad-69/internal/store"
)

// StatusResponse system status response.
type StatusResponse struct {
	HasReference       bool      `json:"hasReference"`
	ReferenceRowCount  int       `json:"referenceRowCount"`
	ReferenceCreatedAt time.Time `json:"referenceCreatedAt"`
}

// GetStatus reports whether a reference snapshot is stored.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snapshot, err := h.store.LoadReference()
	if err != nil {
		if err == store.ErrNoReference {
			c.JSON(http.StatusOK, StatusResponse{HasReference: false})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reference snapshot"})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		HasReference:       true,
		ReferenceRowCount:  len(snapshot.Rows),
		ReferenceCreatedAt: snapshot.CreatedAt,
	})
}
