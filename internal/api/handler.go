// Package api exposes the chat engine over HTTP. Handlers translate
// engine errors into status codes: validation problems are 400s,
// everything else is a 500 with a generic body.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenuni-dev/campus-chatbot-go/internal/engine"
	apperrors "github.com/greenuni-dev/campus-chatbot-go/internal/errors"
	"github.com/greenuni-dev/campus-chatbot-go/internal/logger"
	"github.com/greenuni-dev/campus-chatbot-go/internal/metrics"
)

// Handler holds the engine and serves the chat API endpoints.
type Handler struct {
	engine  *engine.Engine
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewHandler creates the API handler. Metrics may be nil.
func NewHandler(eng *engine.Engine, m *metrics.Metrics, log *logger.Logger) *Handler {
	return &Handler{
		engine:  eng,
		metrics: m,
		log:     log.WithModule("api"),
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type feedbackRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

// Chat answers a user message.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "/chat", "invalid JSON body")
		return
	}

	result, err := h.engine.Search(req.Message)
	if err != nil {
		h.respondError(c, "/chat", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Feedback records a like or dislike verdict on an answer.
func (h *Handler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "/feedback", "invalid JSON body")
		return
	}

	ack, err := h.engine.Feedback(req.Question, req.Answer, req.Feedback)
	if err != nil {
		h.respondError(c, "/feedback", err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// Stats reports engine counters.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Stats())
}

// Analyze explains how a query would be ranked without answering it.
func (h *Handler) Analyze(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "/analyze", "invalid JSON body")
		return
	}

	analysis, err := h.engine.Analyze(req.Message)
	if err != nil {
		h.respondError(c, "/analyze", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Reset clears all feedback state.
func (h *Handler) Reset(c *gin.Context) {
	ack, err := h.engine.Reset()
	if err != nil {
		h.respondError(c, "/reset", err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (h *Handler) badRequest(c *gin.Context, endpoint, message string) {
	if h.metrics != nil {
		h.metrics.RecordHTTPError("bad_request", endpoint)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (h *Handler) respondError(c *gin.Context, endpoint string, err error) {
	if apperrors.IsValidation(err) || errors.Is(err, apperrors.ErrInvalidVerdict) {
		if h.metrics != nil {
			h.metrics.RecordHTTPError("validation", endpoint)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.WithError(err).WithField("endpoint", endpoint).Error("Request failed")
	if h.metrics != nil {
		h.metrics.RecordHTTPError("internal", endpoint)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
