package cli

import (
	"path/filepath"
	"testing"
)

func TestImageCollector(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "scans/b.png", pngData)
	writeImage(t, dir, "scans/a.JPG", pngData)
	writeImage(t, dir, "scans/notes.txt", []byte("notes"))
	writeImage(t, dir, "scans/deep/c.jpeg", pngData)
	explicit := writeImage(t, dir, "report.gif", []byte("GIF89a"))

	exts := []string{".jpg", ".jpeg", ".png"}
	scans := filepath.Join(dir, "scans")

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name: "directory is scanned recursively and sorted",
			args: []string{scans},
			expected: []string{
				filepath.Join(scans, "a.JPG"),
				filepath.Join(scans, "b.png"),
				filepath.Join(scans, "deep", "c.jpeg"),
			},
		},
		{
			name:     "explicit files are kept regardless of extension",
			args:     []string{explicit},
			expected: []string{explicit},
		},
		{
			name: "duplicates are dropped and argument order kept",
			args: []string{filepath.Join(scans, "b.png"), scans},
			expected: []string{
				filepath.Join(scans, "b.png"),
				filepath.Join(scans, "a.JPG"),
				filepath.Join(scans, "deep", "c.jpeg"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewImageCollector(exts, nil).Collect(tt.args)
			if err != nil {
				t.Fatalf("Failed to collect images: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Expected %s at %d, got %s", tt.expected[i], i, got[i])
				}
			}
		})
	}
}

func TestImageCollectorMissingPath(t *testing.T) {
	_, err := NewImageCollector([]string{".png"}, nil).Collect([]string{filepath.Join(t.TempDir(), "missing.png")})
	if err == nil {
		t.Error("Expected error for missing path, but got none")
	}
}
