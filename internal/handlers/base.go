package handlers

import (
	"errors"
	"gameforge/internal/services"
	"gameforge/internal/store"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Render 注入页面通用变量后渲染模板
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	obj["CurrentPath"] = c.Request.URL.Path
	c.HTML(code, name, obj)
}

// RenderError 渲染错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// respondError 把服务层错误映射为 HTTP 状态码，响应体统一为 {"error": "..."}
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
		message = "game not found"
	case errors.Is(err, services.ErrInvalidVote):
		status = http.StatusBadRequest
	case services.IsTimeout(err):
		status = http.StatusGatewayTimeout
		message = "generation timed out, please try again"
	case errors.Is(err, services.ErrNotConfigured):
		message = "server is missing LLM credentials"
	}

	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": message})
}
