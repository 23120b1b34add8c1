package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vigilacore/internal/cycle"
)

// GetStatus reports service health and pending counters.
// GET /api/v1/status
func (h *Handler) GetStatus(c *gin.Context) {
	unrouted, err := h.store.CountUnrouted()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"unrouted": unrouted,
		"cycle":    cycle.Current(time.Now()),
	})
}

// GetCurrentCycle returns the reading cycle in effect this month.
// GET /api/v1/cycle/current
func (h *Handler) GetCurrentCycle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cycle.Current(time.Now())})
}

// ListReleituras returns the stored pending services.
// GET /api/v1/releituras
func (h *Handler) ListReleituras(c *gin.Context) {
	records, err := h.store.ListReleituras()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records, "total": len(records)})
}
