package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
)

// ImageCollector expands command arguments into the image files to analyze.
type ImageCollector struct {
	extensions []string
	log        *logger.Logger
}

// NewImageCollector creates a collector accepting the given extensions.
func NewImageCollector(extensions []string, log *logger.Logger) *ImageCollector {
	if log == nil {
		log = logger.Discard()
	}
	return &ImageCollector{extensions: extensions, log: log}
}

// Collect returns image paths in argument order. Files named explicitly are
// always kept so that unsupported ones are reported; directories contribute
// only files with a matching extension, sorted by path.
func (c *ImageCollector) Collect(paths []string) ([]string, error) {
	var images []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		images = append(images, clean)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("path does not exist: %w", err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := c.collectDirectory(path)
		if err != nil {
			return nil, err
		}
		c.log.Debug("found %d images in %s", len(found), path)
		for _, f := range found {
			add(f)
		}
	}

	return images, nil
}

// collectDirectory walks a directory for files with a matching extension.
func (c *ImageCollector) collectDirectory(directory string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// keep walking past unreadable entries
			c.log.Warn("failed to read %s: %v", path, err)
			if d != nil && d.IsDir() && path != directory {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && media.IsImagePath(path, c.extensions) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", directory, err)
	}

	sort.Strings(found)
	return found, nil
}
