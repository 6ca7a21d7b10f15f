package services

import (
	"context"
	"fmt"
	"gameforge/internal/config"
	"gameforge/internal/utils"
	"log"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const (
	thumbnailSize    = "1792x1024"
	thumbnailQuality = "hd"
	thumbnailCache   = "public, max-age=604800"
)

// ImageClient 图片生成与下载，LLMService 实现了它
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt, size, quality string) (string, error)
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// OpenBucket 按 URL 打开缩略图存储：file:// mem:// s3://
func OpenBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	if u, err := url.Parse(bucketURL); err == nil && u.Scheme == "file" {
		dir := u.Path
		if u.Host != "" {
			// file://./data/thumbnails 会把 "." 解析为 host
			dir = u.Host + u.Path
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure bucket dir: %w", err)
		}
	}
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", bucketURL, err)
	}
	return bucket, nil
}

// ThumbnailService 生成缩略图并转存到自己的存储桶。任何失败都退回占位图
type ThumbnailService struct {
	images      ImageClient
	bucket      *blob.Bucket
	publicBase  string
	placeholder string
	now         func() time.Time
}

func NewThumbnailService(images ImageClient, bucket *blob.Bucket, cfg config.StorageConfig) *ThumbnailService {
	return &ThumbnailService{
		images:      images,
		bucket:      bucket,
		publicBase:  strings.TrimRight(cfg.PublicBaseURL, "/"),
		placeholder: cfg.PlaceholderURL,
		now:         time.Now,
	}
}

func ThumbnailPrompt(title, description string) string {
	return fmt.Sprintf(`Pixel art game screenshot of "%s". Retro 8-bit arcade game style, bright vibrant colors, game interface visible, action scene from the game. Style: classic arcade cabinet screen, pixelated graphics, neon colors. Theme: %s. Make it look like an actual game in progress.`, title, description)
}

// ThumbnailKey 时间戳 + 标题 slug
func ThumbnailKey(at time.Time, title string) string {
	return fmt.Sprintf("%d-%s.png", at.UnixMilli(), utils.Slugify(title, 30))
}

// Generate 返回可公开访问的缩略图 URL；失败时返回占位图，不返回错误
func (s *ThumbnailService) Generate(ctx context.Context, title, description string) string {
	if s == nil || s.images == nil || s.bucket == nil {
		return s.fallbackURL()
	}

	imageURL, err := s.images.GenerateImage(ctx, ThumbnailPrompt(title, description), thumbnailSize, thumbnailQuality)
	if err != nil {
		log.Printf("缩略图生成失败: %v", err)
		return s.placeholder
	}

	data, contentType, err := s.images.Download(ctx, imageURL)
	if err != nil {
		log.Printf("缩略图下载失败: %v", err)
		return s.placeholder
	}
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}

	key := ThumbnailKey(s.now(), title)
	err = s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: thumbnailCache,
	})
	if err != nil {
		log.Printf("缩略图上传失败 %s: %v", key, err)
		return s.placeholder
	}

	log.Printf("缩略图已上传: %s", key)
	return s.publicBase + "/" + key
}

func (s *ThumbnailService) fallbackURL() string {
	if s == nil {
		return config.DefaultPlaceholderURL
	}
	return s.placeholder
}

// Open 读取存储桶中的缩略图，key 会去掉路径穿越片段
func (s *ThumbnailService) Open(ctx context.Context, key string) (*blob.Reader, error) {
	key = SanitizeKey(key)
	if key == "" {
		return nil, os.ErrNotExist
	}
	return s.bucket.NewReader(ctx, key, nil)
}

// SanitizeKey 防止路径穿越
func SanitizeKey(key string) string {
	key = strings.TrimLeft(path.Clean("/"+key), "/")
	if key == "." {
		return ""
	}
	return key
}
