package handlers

import (
	"context"
	"errors"
	"gameforge/internal/services"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	UserPrompt    string `json:"user_prompt"`
	AutoGenerated bool   `json:"auto_generated"`
}

type GenerateHandler struct {
	generator *services.GameGenerator
	scheduler *services.Scheduler
	timeout   time.Duration
}

func NewGenerateHandler(generator *services.GameGenerator, scheduler *services.Scheduler, timeout time.Duration) *GenerateHandler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GenerateHandler{generator: generator, scheduler: scheduler, timeout: timeout}
}

// detached 客户端断开不会中止生成，只受超时限制
func (h *GenerateHandler) detached(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.timeout)
}

// Generate POST /api/generate，body 可选
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := h.detached(c)
	defer cancel()

	res, err := h.generator.Generate(ctx, req.UserPrompt, req.AutoGenerated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"game":        res.Game,
		"title":       res.Title,
		"description": res.Description,
		"thumbnail":   res.Thumbnail,
	})
}

// AutoGenerate POST /api/auto-generate，由 cron 定时调用
func (h *GenerateHandler) AutoGenerate(c *gin.Context) {
	ctx, cancel := h.detached(c)
	defer cancel()

	res, err := h.scheduler.Tick(ctx)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsTimeout(err) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{
			"error":   err.Error(),
			"retryIn": int64(res.RetryIn.Seconds()),
		})
		return
	}

	if !res.Due {
		c.JSON(http.StatusOK, gin.H{
			"message":        "Not time for auto-generation yet",
			"nextGeneration": res.NextGeneration.UTC().Format(time.RFC3339),
			"timeRemaining":  res.TimeRemaining,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Auto-generated game successfully",
		"game":           res.Game,
		"nextGeneration": res.NextGeneration.UTC().Format(time.RFC3339),
	})
}
