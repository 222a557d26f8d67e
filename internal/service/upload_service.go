package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/stagefront/internal/cms"
)

var (
	ErrImageTooLarge  = errors.New("image exceeds the size limit")
	ErrNotImage       = errors.New("file is not an image")
	ErrUploadInFlight = errors.New("another upload for this draft is still running")
)

// mediaCategory is the fixed bucket new uploads are filed under.
const mediaCategory = "uploads"

// UploadService owns the image-upload workflow of the page editor:
// local validation, preview staging, the backend round trip, and the
// guaranteed cleanup of the staged file on every exit path.
type UploadService struct {
	previewDir string
	previewURL string
	maxBytes   int64
	log        *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewUploadService returns a new UploadService instance. previewDir is
// the staging directory on disk, previewURL the route it is served
// under, maxBytes the acceptance limit for a single file.
func NewUploadService(previewDir, previewURL string, maxBytes int64, log *zap.Logger) *UploadService {
	return &UploadService{
		previewDir: previewDir,
		previewURL: strings.TrimSuffix(previewURL, "/"),
		maxBytes:   maxBytes,
		log:        log,
		inFlight:   make(map[string]struct{}),
	}
}

// MaxBytes returns the configured acceptance limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Stage validates the selected file and writes the staged preview
// copy. When it returns an error no backend request has been made and
// nothing is left on disk.
func (s *UploadService) Stage(filename, contentType string, size int64, r io.Reader) (*Preview, error) {
	if size > s.maxBytes {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}

	if err := os.MkdirAll(s.previewDir, 0o755); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
	path := filepath.Join(s.previewDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stage preview: %w", err)
	}

	// 声称的大小可能与实际不符，落盘时再卡一次上限。
	written, err := io.Copy(dst, io.LimitReader(r, s.maxBytes+1))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("stage preview: %w", err)
	}
	if written > s.maxBytes {
		os.Remove(path)
		return nil, ErrImageTooLarge
	}

	width, height := sniffDimensions(path)

	return &Preview{
		path:   path,
		url:    s.previewURL + "/" + name,
		width:  width,
		height: height,
		log:    s.log,
	}, nil
}

// Upload runs the full attempt for one selected file: validate, stage
// the preview, push the bytes to the backend media endpoint, release
// the preview no matter how the attempt ends. The returned
// descriptor's File field is the reference the form records verbatim.
// There is no automatic retry; a failed attempt surfaces its error and
// leaves the form state untouched.
func (s *UploadService) Upload(ctx context.Context, api *cms.Client, draftID, filename, contentType string, size int64, r io.Reader) (cms.MediaFile, error) {
	if err := s.begin(draftID); err != nil {
		return cms.MediaFile{}, err
	}
	defer s.end(draftID)

	preview, err := s.Stage(filename, contentType, size, r)
	if err != nil {
		return cms.MediaFile{}, err
	}
	defer preview.Release()

	staged, err := os.Open(preview.Path())
	if err != nil {
		return cms.MediaFile{}, fmt.Errorf("open staged preview: %w", err)
	}
	defer staged.Close()

	media, err := api.UploadMedia(ctx, cms.MediaUpload{
		Filename: filepath.Base(filename),
		Body:     staged,
		Title:    filepath.Base(filename),
		Category: mediaCategory,
	})
	if err != nil {
		return cms.MediaFile{}, err
	}

	s.log.Info("图片上传完成",
		zap.String("draft", draftID),
		zap.String("reference", media.File),
		zap.Int64("bytes", media.FileSize))
	return media, nil
}

// SweepPreviews removes staged files older than maxAge. Previews are
// normally released within their request; the sweep only catches files
// orphaned by a crash.
func (s *UploadService) SweepPreviews(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.previewDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(s.previewDir, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *UploadService) begin(draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[draftID]; busy {
		return ErrUploadInFlight
	}
	s.inFlight[draftID] = struct{}{}
	return nil
}

func (s *UploadService) end(draftID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, draftID)
}

// sniffDimensions 只读图片头部获取像素尺寸，失败时返回零值。
// webp 解码器通过空白导入注册。
func sniffDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
