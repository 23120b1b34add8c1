// Package v1 exposes the ingestion and dashboard endpoints. Thin glue:
// all behavior lives in the parser, routing, cycle, calculator and store
// packages.
package v1

import (
	"github.com/gin-gonic/gin"

	"vigilacore/internal/calculator"
	"vigilacore/internal/config"
	"vigilacore/internal/importer"
	"vigilacore/internal/reference"
	"vigilacore/internal/store"
)

// Handler v1 API handler.
type Handler struct {
	store       *store.Store
	cfg         *config.AppConfig
	coordinator *importer.Coordinator
	abertura    *calculator.AberturaBuilder
}

// NewHandler creates the v1 handler and its collaborators.
func NewHandler(s *store.Store, cfg *config.AppConfig, root, calendarPath string) *Handler {
	return &Handler{
		store:       s,
		cfg:         cfg,
		coordinator: importer.NewCoordinator(s, cfg, root),
		abertura:    calculator.NewAberturaBuilder(s, reference.NewCalendarCache(), calendarPath),
	}
}

// RegisterRoutes registers the v1 API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.GET("/cycle/current", h.GetCurrentCycle)

	// ingestion
	router.POST("/releituras/import", h.ImportReleituras)
	router.POST("/porteira/import", h.ImportPorteira)

	// releituras
	router.GET("/releituras", h.ListReleituras)

	// porteira dashboards
	router.GET("/porteira/table", h.GetPorteiraTable)
	router.GET("/porteira/stats", h.GetPorteiraStats)
	router.GET("/porteira/totals", h.GetPorteiraTotals)
	router.GET("/porteira/abertura", h.GetAbertura)
}
