// Package storage keeps uploaded product images on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/hoorparvaizz/SweetSpotDevSecOps/internal/apperrors"
)

// URLPrefix is where the HTTP server exposes the upload directory.
const URLPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore writes images into Dir under random names.
type ImageStore struct {
	Dir      string
	MaxBytes int64
}

func NewImageStore(dir string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &ImageStore{Dir: dir, MaxBytes: maxBytes}, nil
}

// Save stores the uploaded file and returns its public URL. Only image
// extensions are accepted.
func (s *ImageStore) Save(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.Validation("Only image files are allowed", map[string]string{
			"image": "Allowed types are jpeg, jpg, png, gif and webp",
		})
	}
	if s.MaxBytes > 0 && header.Size > s.MaxBytes {
		return "", apperrors.Validation("Image is too large", map[string]string{
			"image": fmt.Sprintf("Image must be at most %d bytes", s.MaxBytes),
		})
	}

	src, err := header.Open()
	if err != nil {
		return "", apperrors.Internal("Failed to read upload", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	path := filepath.Join(s.Dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", apperrors.Internal("Failed to store image", err)
	}
	_, err = io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", apperrors.Internal("Failed to store image", err)
	}
	return URLPrefix + "/" + name, nil
}

// Remove deletes an image previously returned by Save. URLs outside the
// store are ignored.
func (s *ImageStore) Remove(url string) error {
	name := strings.TrimPrefix(url, URLPrefix+"/")
	if name == url || name == "" || name != filepath.Base(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}
	return nil
}
