// Package media loads X-ray images from disk and manages their preview files.
package media

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize matches the upload limit advertised to users
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
)

var (
	ErrFileTooLarge    = errors.New("file is too large")
	ErrInvalidFileType = errors.New("invalid file type")
)

// Image is an in-memory image selected for analysis
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the image size in bytes
func (img *Image) Size() int64 {
	if img == nil {
		return 0
	}
	return int64(len(img.Data))
}

// Extension returns the file extension matching the content type
func (img *Image) Extension() string {
	if img.ContentType == ContentTypePNG {
		return ".png"
	}
	return ".jpg"
}

// NewImage validates data and wraps it as an Image
func NewImage(name string, data []byte, maxSize int64) (*Image, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(data), maxSize)
	}
	contentType := SniffContentType(data)
	if contentType == "" {
		return nil, fmt.Errorf("%w: %s is not a JPEG or PNG image", ErrInvalidFileType, name)
	}
	return &Image{
		Name:        filepath.Base(name),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Load reads and validates an image file
func Load(path string, maxSize int64) (*Image, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	// #nosec G304 - the user chooses which image to analyze
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidFileType, path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), maxSize)
	}

	// Read one byte past the limit in case the file grew after Stat
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return NewImage(path, data, maxSize)
}

// SniffContentType returns image/jpeg or image/png, or "" for anything else
func SniffContentType(data []byte) string {
	switch ct := http.DetectContentType(data); ct {
	case ContentTypeJPEG, ContentTypePNG:
		return ct
	default:
		return ""
	}
}

// IsImagePath reports whether the extension is one of exts (case-insensitive)
func IsImagePath(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// MessageKey returns the translation key describing a Load failure
func MessageKey(err error) string {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return "fileTooLarge"
	case errors.Is(err, ErrInvalidFileType):
		return "invalidFileType"
	default:
		return "imageLoadError"
	}
}
