package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Rakk301/speech-to-text-app/internal/errors"
	"github.com/Rakk301/speech-to-text-app/internal/logger"
	"github.com/Rakk301/speech-to-text-app/internal/session"
	"github.com/Rakk301/speech-to-text-app/internal/transcription/whisper"
)

// Handlers exposes the transcription API endpoints over the shared
// session state.
type Handlers struct {
	session *session.Session
	log     *logger.Logger
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(s *session.Session, log *logger.Logger) *Handlers {
	return &Handlers{session: s, log: log.WithComponent("api")}
}

// RegisterRoutes mounts all endpoints on the Gin engine.
func (h *Handlers) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/transcribe", h.Transcribe)
	engine.GET("/providers", h.Providers)
	engine.POST("/switch_provider", h.SwitchProvider)
	engine.POST("/reload_model", h.ReloadModel)
	engine.GET("/health", h.Health)
}

type transcribeRequest struct {
	AudioPath string `json:"audio_path"`
	Provider  string `json:"provider"`
}

// Transcribe runs the transcribe and refine pipeline for one audio file.
func (h *Handlers) Transcribe(c *gin.Context) {
	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apperrors.InvalidInput("Invalid audio path"))
		return
	}
	if req.AudioPath == "" {
		RespondError(c, apperrors.InvalidInput("Invalid audio path"))
		return
	}
	if _, err := os.Stat(req.AudioPath); err != nil {
		RespondError(c, apperrors.InvalidInput("Invalid audio path"))
		return
	}

	text, providerName, err := h.session.Transcribe(c.Request.Context(), req.AudioPath, req.Provider)
	if err != nil {
		h.log.WithError(err).Error("Transcription failed")
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": text,
		"provider":      providerName,
	})
}

// Providers lists registered provider kinds and the active one.
func (h *Handlers) Providers(c *gin.Context) {
	providers := gin.H{}
	for _, info := range h.session.Providers() {
		providers[info.Name] = info
	}
	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"current":   h.session.CurrentProvider(),
	})
}

type switchRequest struct {
	Provider string `json:"provider"`
}

// SwitchProvider replaces the active engine with one of the named kind.
func (h *Handlers) SwitchProvider(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Provider == "" {
		RespondError(c, apperrors.MissingField("Provider not specified", "provider"))
		return
	}

	if err := h.session.Switch(req.Provider); err != nil {
		h.log.WithError(err).Error("Provider switch failed", map[string]interface{}{
			"provider": req.Provider,
		})
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Switched to " + req.Provider,
		"provider": req.Provider,
	})
}

type reloadRequest struct {
	Model       *string  `json:"model"`
	Language    *string  `json:"language"`
	Task        *string  `json:"task"`
	Temperature *float64 `json:"temperature"`
}

// ReloadModel rebuilds the whisper engine with merged option overrides.
func (h *Handlers) ReloadModel(c *gin.Context) {
	var req reloadRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, apperrors.Internal(err))
			return
		}
	}

	merged, err := h.session.Reload(session.Overrides{
		Model:       req.Model,
		Language:    req.Language,
		Task:        req.Task,
		Temperature: req.Temperature,
	})
	if err != nil {
		h.log.WithError(err).Error("Model reload failed")
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Model reloaded successfully",
		"config": gin.H{
			"model":       merged.Model,
			"language":    merged.Language,
			"task":        merged.Task,
			"temperature": merged.Temperature,
		},
		"provider": whisper.ProviderName,
	})
}

// Health is the constant liveness endpoint.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
