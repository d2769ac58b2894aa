package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vizier/domain/core"
	"vizier/domain/spec"
	apperrors "vizier/internal/errors"
	"vizier/internal/report"
)

type registerDatasetRequest struct {
	Path string `json:"path" binding:"required"`
	Name string `json:"name"`
}

// handleRegisterDataset binds a file to a fresh dataset id and profiles it.
func (s *Server) handleRegisterDataset(c *gin.Context) {
	var req registerDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := core.NewDatasetID()
	s.source.Register(id, req.Path)

	fields, err := s.runner.ComputeFieldProperties(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dataset_id": id, "fields": fields})
}

func (s *Server) handleGetFields(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	fields, err := s.repos.Fields.GetFields(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if len(fields) == 0 {
		s.renderError(c, apperrors.NotFoundf("field properties for dataset %s", id))
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataset_id": id, "fields": fields})
}

func (s *Server) handleGetProperties(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	props, err := s.repos.Datasets.GetProperties(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, props)
}

type specsRequest struct {
	Selection    []string          `json:"selection"`
	Conditionals *spec.Conditional `json:"conditionals"`
}

// handleSpecs enumerates, scores, and persists the spec set for a
// selection, returning it ranked.
func (s *Server) handleSpecs(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	var req specsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scored, err := s.runner.Specs(c.Request.Context(), id, req.Selection, req.Conditionals)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"dataset_id": id,
		"key":        core.ComputeSpecSetKey(id, req.Selection, req.Conditionals),
		"specs":      scored,
	})
}

type relationshipsRequest struct {
	DatasetIDs []string `json:"dataset_ids" binding:"required"`
}

func (s *Server) handleDetectRelationships(c *gin.Context) {
	var req relationshipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids := make([]core.DatasetID, 0, len(req.DatasetIDs))
	for _, raw := range req.DatasetIDs {
		id, err := core.ParseDatasetID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ids = append(ids, id)
	}

	rels, err := s.runner.DetectRelationships(c.Request.Context(), ids)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": rels})
}

func (s *Server) handleGetRelationships(c *gin.Context) {
	rels, err := s.repos.Relationships.GetRelationships(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relationships": rels})
}

// handleGetReport renders the dataset profile as HTML.
func (s *Server) handleGetReport(c *gin.Context) {
	id, ok := s.datasetID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	fields, err := s.runner.ComputeFieldProperties(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	props, err := s.repos.Datasets.GetProperties(ctx, id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	rels, err := s.repos.Relationships.GetRelationships(ctx)
	if err != nil {
		s.renderError(c, err)
		return
	}
	scored, err := s.runner.Specs(ctx, id, nil, nil)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if len(scored) > 10 {
		scored = scored[:10]
	}

	html := report.HTML(report.Profile{
		Name:          c.Query("name"),
		Properties:    *props,
		Fields:        fields,
		Relationships: rels,
		TopSpecs:      scored,
	})
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (s *Server) datasetID(c *gin.Context) (core.DatasetID, bool) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return id, true
}

// renderError maps application error codes to HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
