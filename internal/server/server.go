package server

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core"
	"github.com/agenthands/kgraph/internal/core/model"
)

type Server struct {
	Builder *core.Builder
	Logger  *zap.Logger
}

func NewServer(b *core.Builder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Builder: b, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/build", s.Build)
	r.POST("/merge", s.Merge)
	r.GET("/stats", s.Stats)
	r.GET("/concepts", s.Concepts)

	return r
}

type BuildRequest struct {
	InputDir string `json:"input_dir"`
}

// ErrOutsideInput is returned for a build directory that is not under the
// configured input directory.
var ErrOutsideInput = errors.New("input_dir must be inside the configured input directory")

// Build runs the full pipeline over a directory. An empty body uses the
// configured input directory; any other directory must lie under it.
func (s *Server) Build(c *gin.Context) {
	var req BuildRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
	}
	dir, err := InputDir(s.Builder.Config.Paths.Input, req.InputDir)
	if err != nil {
		s.Logger.Warn("rejected build directory", zap.String("input", req.InputDir), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Builder.Run(c.Request.Context(), dir)
	if err != nil {
		s.Logger.Error("build failed", zap.String("input", dir), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build graph", "result": result})
		return
	}

	c.JSON(http.StatusOK, result)
}

type MergeRequest struct {
	Documents []model.DocumentCandidate `json:"documents" binding:"required"`
	Relations []model.RelationCandidate `json:"relations"`
}

// Merge appends candidates that were extracted elsewhere.
func (s *Server) Merge(c *gin.Context) {
	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	batch := model.CandidateBatch{Documents: req.Documents}
	result, err := s.Builder.MergeCandidates(c.Request.Context(), batch, req.Relations)
	if err != nil {
		s.Logger.Error("merge failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge candidates"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) Stats(c *gin.Context) {
	report, err := s.Builder.Report()
	if err != nil {
		s.Logger.Error("failed to read query log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read graph"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) Concepts(c *gin.Context) {
	st, _, err := s.Builder.Graph()
	if err != nil {
		s.Logger.Error("failed to read query log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read graph"})
		return
	}

	concepts := st.Concepts()
	if concepts == nil {
		concepts = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"concepts": concepts, "count": len(concepts)})
}

// InputDir resolves requested against root. Relative paths are taken from
// root, and the result may not escape it.
func InputDir(root, requested string) (string, error) {
	base, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	if requested == "" {
		return base, nil
	}
	if !filepath.IsAbs(requested) {
		requested = filepath.Join(base, requested)
	}
	dir, err := filepath.Abs(requested)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideInput
	}
	return dir, nil
}
