package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"dealsHub/internal/apperror"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// ImageStore persists uploaded deal images under a single directory and hands
// back the generated filename to be stored on the deal.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.Storage("failed to create upload directory", err)
	}

	return &ImageStore{dir: dir}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Allowed reports whether the filename carries a permitted image extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the upload under a collision-free name derived from the
// original: sanitized base plus a time-based suffix.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if !Allowed(file.Filename) {
		return "", apperror.Validation("image type not allowed: use png, jpg, jpeg, gif or webp", nil)
	}

	name := uniqueFilename(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", apperror.Storage("failed to read uploaded image", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperror.Storage("failed to store uploaded image", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperror.Storage("failed to store uploaded image", err)
	}

	return name, nil
}

func uniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = uuid.NewString()
	}

	return fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
}
