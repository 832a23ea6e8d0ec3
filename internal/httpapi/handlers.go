package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/dataset"
)

// APIError is the error payload of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps an APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// respondError writes a JSON error with the given status.
func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleScore scores the posted population. People that fail validation are
// reported in the failures list; only an unreadable body is a client error.
func (s *Server) handleScore(c *gin.Context) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	pop, err := dataset.Decode(body, dataset.JSONFormat)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "body_too_large", err)
			return
		}
		respondError(c, http.StatusBadRequest, "malformed_body", err)
		return
	}

	cfg := s.baseCfg
	if !cfg.AsOfFixed {
		cfg = cfg.Clone()
		cfg.AsOf = time.Now().UTC()
	}

	report, err := core.ScoreDocument(c.Request.Context(), cfg, s.store, pop)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "scoring_failed", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, core.BuildMetricsModel(s.baseCfg.Params))
}
