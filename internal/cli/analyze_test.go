package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yildizm/PneumoDetect/internal/api"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/mockserver"
)

var pngData = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

var testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// stubSubmitter classifies by file name: names containing "pna" are pneumonia,
// names containing "fail" are rejected.
type stubSubmitter struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *stubSubmitter) Submit(ctx context.Context, img *media.Image) (*api.Submission, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if strings.Contains(img.Name, "fail") {
		return nil, errors.New("service unavailable")
	}
	if strings.Contains(img.Name, "pna") {
		return &api.Submission{Prediction: "PNEUMONIA", PneumoniaProbability: 0.9, NormalProbability: 0.1}, nil
	}
	return &api.Submission{Prediction: "NORMAL", PneumoniaProbability: 0.2, NormalProbability: 0.8, Timestamp: "2024-01-01T00:00:00Z"}, nil
}

func writeImage(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestAnalyzeImagesKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeImage(t, dir, "a-pna.png", pngData),
		writeImage(t, dir, "b-normal.png", pngData),
		writeImage(t, dir, "c-fail.png", pngData),
		writeImage(t, dir, "d-text.png", []byte("not an image")),
		writeImage(t, dir, "e-pna.png", pngData),
	}

	client := &stubSubmitter{delay: 10 * time.Millisecond}
	report, err := analyzeImages(context.Background(), client, paths, batchOptions{
		Concurrency: 2,
		MaxFileSize: 1024,
		Now:         func() time.Time { return testNow },
		NewID:       sequentialIDs(),
	})
	if err != nil {
		t.Fatalf("Failed to analyze images: %v", err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(report.Results))
	}
	expected := []common.Prediction{common.PredictionPneumonia, common.PredictionNormal, common.PredictionPneumonia}
	for i, want := range expected {
		if report.Results[i].Prediction != want {
			t.Errorf("Expected result %d to be %s, got %s", i, want, report.Results[i].Prediction)
		}
	}
	if report.Results[0].ImagePath != paths[0] {
		t.Errorf("Expected local path as image path, got %s", report.Results[0].ImagePath)
	}
	if report.Results[0].Timestamp != "2024-03-01T09:00:00Z" {
		t.Errorf("Expected submission time as timestamp, got %s", report.Results[0].Timestamp)
	}
	if report.Results[1].Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("Expected service timestamp to be kept, got %s", report.Results[1].Timestamp)
	}

	if len(report.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(report.Failures))
	}
	if report.Failures[0].Path != paths[2] || !strings.Contains(report.Failures[0].Error, "service unavailable") {
		t.Errorf("Unexpected first failure: %+v", report.Failures[0])
	}
	if report.Failures[1].Path != paths[3] || !strings.Contains(report.Failures[1].Error, "invalid file type") {
		t.Errorf("Unexpected second failure: %+v", report.Failures[1])
	}
	if !report.GeneratedAt.Equal(testNow) {
		t.Errorf("Expected report time %v, got %v", testNow, report.GeneratedAt)
	}
}

func TestAnalyzeImagesRespectsConcurrency(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths, writeImage(t, dir, fmt.Sprintf("img-%d.png", i), pngData))
	}

	client := &stubSubmitter{delay: 20 * time.Millisecond}
	report, err := analyzeImages(context.Background(), client, paths, batchOptions{Concurrency: 3})
	if err != nil {
		t.Fatalf("Failed to analyze images: %v", err)
	}

	if len(report.Results) != 8 {
		t.Errorf("Expected 8 results, got %d", len(report.Results))
	}
	if peak := client.peak.Load(); peak > 3 {
		t.Errorf("Expected at most 3 uploads in flight, got %d", peak)
	}
}

func TestAnalyzeImagesCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeImage(t, dir, "slow.png", pngData)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := analyzeImages(ctx, &stubSubmitter{delay: time.Second}, paths, batchOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected cancellation error, got %v", err)
	}
}

func TestAnalyzeImagesAgainstMockServer(t *testing.T) {
	server := mockserver.New(mockserver.Config{Seed: 7, MaxFileSize: 1024})
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	client, err := api.New(&api.Config{BaseURL: ts.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	dir := t.TempDir()
	paths := []string{
		writeImage(t, dir, "one.png", pngData),
		writeImage(t, dir, "two.png", pngData),
	}

	report, err := analyzeImages(context.Background(), client, paths, batchOptions{MaxFileSize: 1024})
	if err != nil {
		t.Fatalf("Failed to analyze images: %v", err)
	}
	if len(report.Results) != 2 || len(report.Failures) != 0 {
		t.Fatalf("Expected 2 results and no failures, got %d/%d", len(report.Results), len(report.Failures))
	}
	for _, r := range report.Results {
		if !r.Prediction.Valid() {
			t.Errorf("Expected a valid prediction, got %q", r.Prediction)
		}
		sum := r.Probabilities.Pneumonia + r.Probabilities.Normal
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("Expected probabilities to sum to 1, got %f", sum)
		}
	}
	if server.Len() != 2 {
		t.Errorf("Expected the server to store 2 analyses, got %d", server.Len())
	}
}

func TestWriteOutputBytesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	if err := writeOutputBytesToFile([]byte("id,prediction\n"), path); err != nil {
		t.Fatalf("Failed to write output: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(data) != "id,prediction\n" {
		t.Errorf("Expected written content, got %q", string(data))
	}
}
