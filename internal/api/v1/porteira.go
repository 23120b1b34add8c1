package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPorteiraTable returns the detailed reading-results table.
// GET /api/v1/porteira/table?ciclo=97&regiao=Uberaba
func (h *Handler) GetPorteiraTable(c *gin.Context) {
	rows, err := h.store.ResultadosTable(c.Query("ciclo"), c.Query("regiao"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// GetPorteiraStats returns the per-region aggregates.
// GET /api/v1/porteira/stats
func (h *Handler) GetPorteiraStats(c *gin.Context) {
	stats, err := h.store.ResultadosStatsByRegion(c.Query("ciclo"), c.Query("regiao"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// GetPorteiraTotals returns the grand totals.
// GET /api/v1/porteira/totals
func (h *Handler) GetPorteiraTotals(c *gin.Context) {
	totals, err := h.store.ResultadosTotals(c.Query("ciclo"), c.Query("regiao"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": totals})
}

// GetAbertura returns the current vs previous month abertura tables.
// GET /api/v1/porteira/abertura?ciclo=97&regiao=Araxá
func (h *Handler) GetAbertura(c *gin.Context) {
	comparison, err := h.abertura.BuildComparison(c.Query("ciclo"), c.Query("regiao"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": comparison})
}
