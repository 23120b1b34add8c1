// Package server assembles the HTTP surface around the store and the
// v1 API handlers.
package server

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	v1 "vigilacore/internal/api/v1"
	"vigilacore/internal/config"
	"vigilacore/internal/store"
)

// Server HTTP server.
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer builds the server: opens the SQLite store under the data
// directory and mounts the v1 API.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "vigilacore.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	root := filepath.Dir(dataDir)
	calendarPath := config.CalendarPath(cfg, dataDir)
	handler := v1.NewHandler(sqliteStore, cfg, root, calendarPath)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
	}

	api := s.router.Group("/api/v1")
	handler.RegisterRoutes(api)

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return s
}

// Run starts listening on addr, blocking.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}
