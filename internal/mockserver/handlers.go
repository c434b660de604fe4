package mockserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yildizm/PneumoDetect/internal/api"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
)

// decision threshold of the classifier
const pneumoniaThreshold = 0.5

// record is one stored analysis with its upload
type record struct {
	id            string
	result        string
	pneumoniaProb float64
	normalProb    float64
	analyzedAt    time.Time
	imagePath     string
	image         *media.Image
}

type analyzeResponse struct {
	Result        string  `json:"result"`
	PneumoniaProb float64 `json:"pneumonia_prob"`
	NormalProb    float64 `json:"normal_prob"`
	Timestamp     string  `json:"timestamp"`
	ImagePath     string  `json:"image_path"`
}

type historyItem struct {
	ID            string  `json:"id"`
	Result        string  `json:"result"`
	PneumoniaProb float64 `json:"pneumonia_prob"`
	NormalProb    float64 `json:"normal_prob"`
	AnalyzedAt    string  `json:"analyzed_at"`
	ImagePath     string  `json:"image_path"`
}

// httpError carries the status a handler failure maps to
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

func newHTTPError(status int, format string, args ...interface{}) error {
	return &httpError{status: status, message: fmt.Sprintf(format, args...)}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap renders handler errors as {"error": ...} bodies
func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var he *httpError
		if errors.As(err, &he) {
			writeJSON(w, he.status, map[string]string{"error": he.message})
			return
		}
		if errors.Is(err, r.Context().Err()) {
			return
		}
		s.logger.WarnWithFields("Request failed", []logger.Field{logger.Error(err)})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// POST /analyze
// Multipart body with the X-ray in the "image" field.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(s.config.MaxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return newHTTPError(http.StatusRequestEntityTooLarge, "%s", media.ErrFileTooLarge.Error())
		}
		return newHTTPError(http.StatusBadRequest, "invalid multipart body: %v", err)
	}

	file, header, err := r.FormFile(api.ImageField)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "no image provided")
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "failed to read image: %v", err)
	}

	img, err := media.NewImage(header.Filename, data, s.config.MaxFileSize)
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		return newHTTPError(http.StatusRequestEntityTooLarge, "%s", err.Error())
	case err != nil:
		return newHTTPError(http.StatusBadRequest, "%s", err.Error())
	}

	if s.config.Latency > 0 {
		timer := time.NewTimer(s.config.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return r.Context().Err()
		}
	}

	rec := s.classify(img)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:        rec.result,
		PneumoniaProb: rec.pneumoniaProb,
		NormalProb:    rec.normalProb,
		Timestamp:     rec.analyzedAt.Format(time.RFC3339Nano),
		ImagePath:     rec.imagePath,
	})
	return nil
}

// classify scores an upload and stores it
func (s *Server) classify(img *media.Image) *record {
	id := s.newID()
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.rng.Float64()
	label := "NORMAL"
	if p > pneumoniaThreshold {
		label = "PNEUMONIA"
	}

	rec := &record{
		id:            id,
		result:        label,
		pneumoniaProb: p,
		normalProb:    1 - p,
		analyzedAt:    now,
		imagePath:     "uploads/" + id + img.Extension(),
		image:         img,
	}
	s.records = append(s.records, rec)
	return rec
}

// GET /history
// Newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) error {
	s.mu.RLock()
	items := make([]historyItem, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		items = append(items, historyItem{
			ID:            rec.id,
			Result:        rec.result,
			PneumoniaProb: rec.pneumoniaProb,
			NormalProb:    rec.normalProb,
			AnalyzedAt:    rec.analyzedAt.Format(time.RFC3339Nano),
			ImagePath:     rec.imagePath,
		})
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, items)
	return nil
}

// GET /images/{id}
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	var img *media.Image
	for _, rec := range s.records {
		if rec.id == id {
			img = rec.image
			break
		}
	}
	s.mu.RUnlock()

	if img == nil {
		return newHTTPError(http.StatusNotFound, "image not found: %s", id)
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", img.Size()))
	_, err := w.Write(img.Data)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
