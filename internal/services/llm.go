package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gameforge/internal/config"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured 缺少 LLM 凭据，属于配置错误
var ErrNotConfigured = errors.New("llm token is not configured")

// UpstreamError LLM 或图片服务返回非 2xx
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// ChatResponse OpenAI 兼容的 chat/completions 响应（只取需要的字段）
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type ImageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
}

type ImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

// LLMService OpenAI 兼容接口的客户端：文本补全与图片生成
type LLMService struct {
	baseURL    string
	token      string
	model      string
	imageModel string
	client     *http.Client
}

func NewLLMService(cfg config.LLMConfig) *LLMService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &LLMService{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *LLMService) Configured() bool {
	return s.token != ""
}

// Chat 调用 chat/completions，返回第一条回复（已去首尾空白）
func (s *LLMService) Chat(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	var resp ChatResponse
	err := s.postJSON(ctx, "/chat/completions", ChatRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage 调用 images/generations，返回图片的临时 URL
func (s *LLMService) GenerateImage(ctx context.Context, prompt, size, quality string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	var resp ImageResponse
	err := s.postJSON(ctx, "/images/generations", ImageRequest{
		Model:   s.imageModel,
		Prompt:  prompt,
		N:       1,
		Size:    size,
		Quality: quality,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image api returned no url")
	}
	return resp.Data[0].URL, nil
}

// maxImageBytes 缩略图下载上限
var maxImageBytes int64 = 8 << 20

// Download 下载生成的图片，返回内容与 Content-Type
func (s *LLMService) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("创建请求失败: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("下载失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &UpstreamError{Status: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("读取图片失败: %w", err)
	}
	if int64(len(data)) > maxImageBytes {
		return nil, "", fmt.Errorf("图片超过 %d 字节上限", maxImageBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (s *LLMService) postJSON(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
