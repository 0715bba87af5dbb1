package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ruscigno/argus/model"
	"github.com/Ruscigno/argus/pipeline"
)

// Runner is the pipeline contract the API drives.
type Runner interface {
	Run(ctx context.Context, query string, onEvent pipeline.EventFunc) (*model.AnalysisReport, error)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

type researchRequest struct {
	Query string `json:"query"`
	// Product is the request key used by the legacy client.
	Product string `json:"product"`
}

// Research runs the scrape-and-synthesize pipeline for a free-text
// query and streams progress events as data: frames, terminated by a
// literal [DONE] frame. Closing the connection cancels the run.
func (h *Handler) Research(c *gin.Context) {
	var req researchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = strings.TrimSpace(req.Product)
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	// The pipeline serializes event delivery, so writing from the
	// callback is safe; Run blocks until the run is over.
	sendEvent := func(event model.PipelineEvent) {
		payload, err := json.Marshal(event)
		if err != nil {
			zap.L().Error("failed to encode pipeline event", zap.Error(err))
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		c.Writer.Flush()
	}

	if _, err := h.runner.Run(c.Request.Context(), query, sendEvent); err != nil {
		zap.L().Warn("research run failed", zap.String("query", query), zap.Error(err))
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "argus"})
}
