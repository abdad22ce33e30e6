package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// presignTTL bounds how long a stored photo URL stays fetchable. Report
// generation re-reads objects directly, so expiry only affects clients.
const presignTTL = 7 * 24 * time.Hour

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	// UploadBase64 accepts the JSON upload contract used by browser clients:
	// a filename plus the raw content as a base64 string.
	UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error)
	GetBase64(ctx context.Context, fileID string) (*domain.File, string, error)
	Delete(ctx context.Context, fileID string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	objects objectStore
	repo    fileStore
}

type ServiceDeps struct {
	ObjectStore objectStore
	FileRepo    fileStore
}

func NewService(deps ServiceDeps) Service {
	return &service{objects: deps.ObjectStore, repo: deps.FileRepo}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	safeName := sanitizeFilename(input.Filename)
	key := fmt.Sprintf("photos/%s/%s_%s", input.UploaderID, id.New(), safeName)
	hasher := sha256.New()
	tee := io.TeeReader(input.Reader, hasher)
	if _, err := s.objects.Upload(ctx, key, tee, input.ContentType); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.File{
		FileID:           id.New(),
		Object:           key,
		Size:             input.Size,
		Type:             input.ContentType,
		Name:             safeName,
		Hash:             hex.EncodeToString(hasher.Sum(nil)),
		UploadedByUserID: input.UploaderID,
		Enable:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	s.attachURL(ctx, f)
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UploadBase64(ctx context.Context, filename, base64Data, uploaderID string) (*domain.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", domain.ErrBadRequest)
	}
	safeName := sanitizeFilename(filename)
	return s.Upload(ctx, UploadInput{
		Reader:      bytes.NewReader(decoded),
		Filename:    safeName,
		ContentType: contentTypeFromName(safeName),
		Size:        int64(len(decoded)),
		UploaderID:  uploaderID,
	})
}

func (s *service) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.File, error) {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if !f.Enable {
		return nil, nil, fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	rc, err := s.objects.Download(ctx, f.Object)
	if err != nil {
		return nil, nil, err
	}
	return rc, f, nil
}

func (s *service) GetBase64(ctx context.Context, fileID string) (*domain.File, string, error) {
	rc, f, err := s.Download(ctx, fileID)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, "", err
	}
	return f, base64.StdEncoding.EncodeToString(data), nil
}

func (s *service) Delete(ctx context.Context, fileID string) error {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if !f.Enable {
		return fmt.Errorf("file not found: %w", domain.ErrNotFound)
	}
	if err := s.objects.Delete(ctx, f.Object); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, fileID)
}

func (s *service) attachURL(ctx context.Context, f *domain.File) {
	url, err := s.objects.PresignedURL(ctx, f.Object, presignTTL)
	if err != nil {
		log.Printf("presign %s: %v", f.Object, err)
		return
	}
	f.URL = &url
}

func contentTypeFromName(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".gif"):
		return "image/gif"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
