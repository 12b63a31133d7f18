package knowledge

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptor_back/chunking"
)

// Module wires the segmentation service into the HTTP router.
type Module struct {
	service *Service
}

// RegisterRoutes bootstraps the segmentation endpoints under /segment.
func RegisterRoutes(router *gin.Engine) (*Module, error) {
	service, err := NewServiceFromEnv()
	if err != nil {
		return nil, err
	}
	module := &Module{service: service}

	group := router.Group("/segment")
	group.POST("", module.handleSegment)
	group.GET("/strategies", module.handleStrategies)

	return module, nil
}

// Service exposes the underlying service, mainly for tests.
func (m *Module) Service() *Service {
	if m == nil {
		return nil
	}
	return m.service
}

func (m *Module) handleSegment(c *gin.Context) {
	var req SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	result, err := m.service.Segment(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (m *Module) handleStrategies(c *gin.Context) {
	defaults := m.service.Defaults()
	c.JSON(http.StatusOK, gin.H{
		"strategies": m.service.Strategies(),
		"defaults": gin.H{
			"min_words":        defaults.MinWords,
			"max_words":        defaults.MaxWords,
			"overlap":          defaults.Overlap,
			"token_chunk_size": defaults.TokenChunkSize,
			"token_overlap":    defaults.TokenOverlap,
		},
	})
}

func statusForError(err error) int {
	var paramErr *chunking.ParameterError
	if errors.As(err, &paramErr) || errors.Is(err, ErrUnknownStrategy) {
		return http.StatusBadRequest
	}
	var chunkErr *chunking.ChunkingError
	if errors.As(err, &chunkErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
