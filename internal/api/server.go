// Package api exposes the inference pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vizier/adapters/tabular"
	"vizier/internal"
	"vizier/internal/pipeline"
)

// Server hosts the JSON API for dataset ingestion, field properties,
// relationships, visualization specs, and profile reports.
type Server struct {
	router *gin.Engine
	runner *pipeline.Runner
	source *tabular.Source
	repos  pipeline.Repos
	log    *internal.Logger
}

// NewServer wires the routes. The source must be the same instance the
// runner reads through, so registered datasets are visible to the pipeline.
func NewServer(runner *pipeline.Runner, source *tabular.Source, repos pipeline.Repos, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router: gin.New(),
		runner: runner,
		source: source,
		repos:  repos,
		log:    logger,
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/datasets", s.handleRegisterDataset)
		v1.GET("/datasets/:id/fields", s.handleGetFields)
		v1.GET("/datasets/:id/properties", s.handleGetProperties)
		v1.GET("/datasets/:id/report", s.handleGetReport)
		v1.POST("/datasets/:id/specs", s.handleSpecs)
		v1.POST("/relationships", s.handleDetectRelationships)
		v1.GET("/relationships", s.handleGetRelationships)
	}
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	s.log.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}
