package media

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Preview is a displayable handle to an image that must be released
type Preview interface {
	URL() string
	Release() error
}

// PreviewProvider acquires previews for images
type PreviewProvider interface {
	Acquire(img *Image) (Preview, error)
}

// TempPreviews writes each previewed image to a temporary file
type TempPreviews struct {
	Dir string
}

// NewTempPreviews creates a provider writing under dir; empty dir means os.TempDir()
func NewTempPreviews(dir string) *TempPreviews {
	return &TempPreviews{Dir: dir}
}

// Acquire writes img to a new temporary file
func (p *TempPreviews) Acquire(img *Image) (Preview, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to preview")
	}
	if p.Dir != "" {
		if err := os.MkdirAll(p.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create preview directory: %w", err)
		}
	}

	f, err := os.CreateTemp(p.Dir, "preview-*"+img.Extension())
	if err != nil {
		return nil, fmt.Errorf("failed to create preview file: %w", err)
	}
	if _, err := f.Write(img.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to close preview file: %w", err)
	}

	return &tempPreview{path: f.Name()}, nil
}

type tempPreview struct {
	path string
	once sync.Once
	err  error
}

func (p *tempPreview) URL() string {
	abs, err := filepath.Abs(p.path)
	if err != nil {
		abs = p.path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// Release removes the file; later calls return the first result
func (p *tempPreview) Release() error {
	p.once.Do(func() {
		if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
			p.err = fmt.Errorf("failed to remove preview file: %w", err)
		}
	})
	return p.err
}

// SaveCopy writes img into dir as xray-<unix millis><ext> and returns the path
func SaveCopy(img *Image, dir string, now time.Time) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image to save")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("xray-%d%s", now.UnixMilli(), img.Extension()))
	if err := os.WriteFile(path, img.Data, 0o600); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return path, nil
}
