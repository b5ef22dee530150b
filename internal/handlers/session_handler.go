package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"interview-service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ServiceName    = "AI Interview Engine"
	ServiceVersion = "2.0.0"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// Health reports service liveness.
func (h *SessionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// Start creates a new interview session for a domain and level.
func (h *SessionHandler) Start(c *gin.Context) {
	var req struct {
		Domain string `json:"domain" binding:"required"`
		Level  string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.Service.Start(context.Background(), req.Domain, req.Level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Evaluate accepts one multimodal answer (text + image + audio) as a
// multipart form and returns its score, plus the final report when the
// last question was answered.
func (h *SessionHandler) Evaluate(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	answerText := c.PostForm("answer_text")

	image, err := readUpload(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image upload is required", "details": err.Error()})
		return
	}
	audio, err := readUpload(c, "audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio upload is required", "details": err.Error()})
		return
	}

	resp, err := h.Service.Evaluate(c.Request.Context(), sessionID, index, answerText, image, audio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSession returns the persisted session, model answers stripped.
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.Service.Get(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetDomains lists the available interview domains.
func (h *SessionHandler) GetDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": h.Service.Domains()})
}

func readUpload(c *gin.Context, field string) (service.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return service.Upload{}, err
	}
	f, err := header.Open()
	if err != nil {
		return service.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// respondError maps service failures onto stable HTTP payloads. Raw
// internal errors never reach the client.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(statusForKind(svcErr.Kind), gin.H{
			"error": svcErr.Message,
			"code":  string(svcErr.Kind),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindInvalidIndex, service.KindInvalidAudio, service.KindEmptySession:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
