package services

import (
	"context"
	"errors"
	"gameforge/internal/config"
	"strings"
	"testing"
	"time"

	"gocloud.dev/blob/memblob"
)

type fakeImages struct {
	url      string
	genErr   error
	data     []byte
	dlErr    error
	prompts  []string
	download []string
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt, size, quality string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.url, f.genErr
}

func (f *fakeImages) Download(ctx context.Context, url string) ([]byte, string, error) {
	f.download = append(f.download, url)
	return f.data, "image/png", f.dlErr
}

func newTestThumbnails(images ImageClient) *ThumbnailService {
	s := NewThumbnailService(images, memblob.OpenBucket(nil), config.StorageConfig{
		PublicBaseURL:  "/thumbnails/",
		PlaceholderURL: "/placeholder.png",
	})
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestThumbnailGenerateUploads(t *testing.T) {
	images := &fakeImages{url: "https://img.example/a.png", data: []byte("PNG")}
	s := newTestThumbnails(images)
	ctx := context.Background()

	got := s.Generate(ctx, "Candy Racing Rush!", "Drift")
	want := "/thumbnails/1700000000000-candy-racing-rush-.png"
	if got != want {
		t.Fatalf("Generate() = %s, want %s", got, want)
	}
	if len(images.prompts) != 1 || !strings.Contains(images.prompts[0], `"Candy Racing Rush!"`) || !strings.Contains(images.prompts[0], "Theme: Drift.") {
		t.Errorf("unexpected prompt %v", images.prompts)
	}

	r, err := s.Open(ctx, "1700000000000-candy-racing-rush-.png")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()
	if r.ContentType() != "image/png" {
		t.Errorf("content type = %s", r.ContentType())
	}
}

func TestThumbnailFallsBackToPlaceholder(t *testing.T) {
	ctx := context.Background()

	s := newTestThumbnails(&fakeImages{genErr: errors.New("boom")})
	if got := s.Generate(ctx, "T", "D"); got != "/placeholder.png" {
		t.Errorf("generation failure should use placeholder, got %s", got)
	}

	images := &fakeImages{url: "https://img.example/a.png", dlErr: errors.New("404")}
	s = newTestThumbnails(images)
	if got := s.Generate(ctx, "T", "D"); got != "/placeholder.png" {
		t.Errorf("download failure should use placeholder, got %s", got)
	}
	if len(images.download) != 1 {
		t.Errorf("expected one download attempt, got %d", len(images.download))
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		"a.png":          "a.png",
		"/a.png":         "a.png",
		"../../etc/pass": "etc/pass",
		"x/../y.png":     "y.png",
		"":               "",
		"..":             "",
	}
	for in, want := range tests {
		if got := SanitizeKey(in); got != want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
