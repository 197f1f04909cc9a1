// Package uploads stores avatar and technical specification photos on
// local disk. Only the resulting public URL is persisted, on the
// owning entity row.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxFileSize   = 10 * 1024 * 1024 // 10 MB
	DefaultDir    = "./uploads"
	StaticURLBase = "/static/uploads"
)

var (
	ErrEmptyFile        = errors.New("empty file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("only jpg, jpeg and png files are allowed")
)

// allowedExtensions mirrors the image fields' validator: photos and
// avatars are jpg/jpeg/png only.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type Service struct {
	baseDir    string
	staticBase string
}

func NewService(baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = DefaultDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Service{baseDir: baseDir, staticBase: staticBase}
}

// SaveImage writes an uploaded image under subdir ("avatars",
// "orders", "activities") and returns its public URL.
func (s *Service) SaveImage(fileHeader *multipart.FileHeader, subdir string) (string, error) {
	if fileHeader.Size == 0 {
		return "", ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", ErrInvalidExtension
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	now := time.Now()
	relDir := filepath.Join(subdir, fmt.Sprintf("%d/%02d", now.Year(), now.Month()))
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	absPath := filepath.Join(absDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.ToSlash(filepath.Join(relDir, filename))
	return s.staticBase + "/" + relPath, nil
}

// BaseDir is the directory the router serves under StaticURLBase.
func (s *Service) BaseDir() string { return s.baseDir }
