package handlers

import (
	"gameforge/internal/services"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gocloud.dev/gcerrors"
)

type ThumbnailHandler struct {
	thumbs *services.ThumbnailService
}

func NewThumbnailHandler(thumbs *services.ThumbnailService) *ThumbnailHandler {
	return &ThumbnailHandler{thumbs: thumbs}
}

// Serve GET /thumbnails/*key 从存储桶读取缩略图
func (h *ThumbnailHandler) Serve(c *gin.Context) {
	r, err := h.thumbs.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound || services.SanitizeKey(c.Param("key")) == "" {
			c.String(http.StatusNotFound, "图片不存在")
			return
		}
		log.Printf("读取缩略图失败: %v", err)
		c.String(http.StatusBadGateway, "获取图片失败")
		return
	}
	defer r.Close()

	contentType := r.ContentType()
	if contentType == "" {
		contentType = "image/png"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Length", strconv.FormatInt(r.Size(), 10))
	// 缓存控制：缓存 7 天
	c.Header("Cache-Control", "public, max-age=604800")

	c.Status(http.StatusOK)
	io.Copy(c.Writer, r)
}
