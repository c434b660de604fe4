// Package app holds the application state store that coordinates navigation,
// image selection, analysis and history loading.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/PneumoDetect/internal/api"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"github.com/yildizm/PneumoDetect/internal/pubsub"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

// Analyzer is the remote analysis service as seen by the store
type Analyzer interface {
	Submit(ctx context.Context, img *media.Image) (*api.Submission, error)
	FetchHistory(ctx context.Context) ([]common.AnalysisResult, error)
}

// Notifier raises user-visible notifications
type Notifier interface {
	Show(t toast.Type, message string) string
}

// Listener receives a state snapshot after every change
type Listener func(State)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.log = l.WithComponent("store")
	}
}

// WithTranslator sets the language notifications are written in
func WithTranslator(tr *i18n.Translator) Option {
	return func(s *Store) {
		s.tr = tr
	}
}

// WithClock overrides the time source used for fallback timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides result id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Store is the single source of truth for the running application.
// All methods are safe for concurrent use; none of them returns an error,
// failures are reported through the Notifier instead.
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64
	preview media.Preview
	feed    pubsub.Feed[State]

	analyzer Analyzer
	notifier Notifier
	previews media.PreviewProvider
	tr       *i18n.Translator
	log      *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewStore creates a store on the home page with nothing selected and an empty history
func NewStore(analyzer Analyzer, notifier Notifier, previews media.PreviewProvider, opts ...Option) *Store {
	s := &Store{
		state: State{
			CurrentPage: PageHome,
			History:     []common.AnalysisResult{},
		},
		analyzer: analyzer,
		notifier: notifier,
		previews: previews,
		tr:       i18n.NewTranslator(i18n.DefaultLanguage),
		log:      logger.NewWithCallback("store", func() bool { return false }),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers a listener, calls it once with the current state,
// and returns a function that unregisters it
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	version, snapshot := s.version, s.state.clone()
	s.mu.Unlock()

	return s.feed.Subscribe(version, snapshot, listener)
}

// NavigateTo switches the current page and touches nothing else
func (s *Store) NavigateTo(page Page) {
	s.mu.Lock()
	s.state.CurrentPage = page
	s.unlockAndPublish()
}

// SetSelectedImage replaces the selected image. The preview of the previous
// image is released before a preview of the new one is acquired; nil clears both.
func (s *Store) SetSelectedImage(img *media.Image) {
	s.mu.Lock()
	s.releasePreviewLocked()
	s.state.SelectedImage = img
	if img != nil {
		s.acquirePreviewLocked(img)
	}
	s.unlockAndPublish()
}

// AnalyzeCurrentImage submits the selected image and records the result.
// A call made while another analysis is in flight is ignored.
func (s *Store) AnalyzeCurrentImage(ctx context.Context) {
	s.mu.Lock()
	img := s.state.SelectedImage
	if img == nil {
		s.mu.Unlock()
		s.log.Warn("analyze requested without a selected image")
		s.notify(toast.TypeError, "selectImageFirst")
		return
	}
	if s.state.IsAnalyzing {
		s.mu.Unlock()
		s.log.Debug("analysis already in flight, ignoring request")
		s.notify(toast.TypeInfo, "analysisInProgress")
		return
	}
	s.state.IsAnalyzing = true
	s.unlockAndPublish()

	start := s.now()
	result, err := s.analyze(ctx, img)

	s.mu.Lock()
	s.state.IsAnalyzing = false
	if err == nil {
		s.state.CurrentResult = &result
		s.state.History = append([]common.AnalysisResult{result}, s.state.History...)
		s.state.CurrentPage = PageResult
	}
	s.unlockAndPublish()

	if err != nil {
		s.log.Error("analysis of %s failed: kind=%s: %v", img.Name, api.KindOf(err), err)
		s.notify(toast.TypeError, "analysisError")
		return
	}

	s.log.InfoWithFields("analysis completed", []logger.Field{
		logger.F("id", result.ID),
		logger.F("prediction", result.Prediction),
		logger.F("confidence", fmt.Sprintf("%.3f", result.Probabilities.Confidence())),
		logger.Duration(s.now().Sub(start)),
	})
	s.notify(toast.TypeSuccess, "analysisSuccess")
}

// analyze calls the service and maps the response. A panic while mapping
// becomes an error so the in-flight flag is still reset by the caller.
func (s *Store) analyze(ctx context.Context, img *media.Image) (result common.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()

	submitted := s.now()
	sub, err := s.analyzer.Submit(ctx, img)
	if err != nil {
		return common.AnalysisResult{}, err
	}
	if sub == nil {
		return common.AnalysisResult{}, fmt.Errorf("empty submission response")
	}

	return sub.Result(s.newID(), submitted)
}

// LoadHistory replaces the history with the service's list.
// A call made while another load is in flight is ignored.
func (s *Store) LoadHistory(ctx context.Context) {
	s.mu.Lock()
	if s.state.IsHistoryLoading {
		s.mu.Unlock()
		s.log.Debug("history load already in flight, ignoring request")
		s.notify(toast.TypeInfo, "historyInProgress")
		return
	}
	s.state.IsHistoryLoading = true
	s.unlockAndPublish()

	history, err := s.fetchHistory(ctx)

	s.mu.Lock()
	s.state.IsHistoryLoading = false
	if err == nil {
		s.state.History = history
	}
	s.unlockAndPublish()

	if err != nil {
		s.log.Error("history load failed: kind=%s: %v", api.KindOf(err), err)
		s.notify(toast.TypeError, "historyLoadError")
		return
	}
	s.log.DebugWithFields("history loaded", []logger.Field{logger.Count(len(history))})
}

func (s *Store) fetchHistory(ctx context.Context) (history []common.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("history load panicked: %v", r)
		}
	}()

	items, err := s.analyzer.FetchHistory(ctx)
	if err != nil {
		return nil, err
	}
	history = make([]common.AnalysisResult, len(items))
	copy(history, items)
	return history, nil
}

// ClearResults drops the selected image and current result and returns home
func (s *Store) ClearResults() {
	s.mu.Lock()
	s.releasePreviewLocked()
	s.state.SelectedImage = nil
	s.state.CurrentResult = nil
	s.state.CurrentPage = PageHome
	s.unlockAndPublish()
}

// ClearCurrentResult is the same as ClearResults
func (s *Store) ClearCurrentResult() {
	s.ClearResults()
}

// ViewResult shows an existing result, typically one picked from the history
func (s *Store) ViewResult(result common.AnalysisResult) {
	s.mu.Lock()
	s.state.CurrentResult = &result
	s.state.CurrentPage = PageResult
	s.unlockAndPublish()
}

// Close releases the preview of the selected image
func (s *Store) Close() error {
	s.mu.Lock()
	err := s.releasePreviewLocked()
	s.unlockAndPublish()
	return err
}

func (s *Store) acquirePreviewLocked(img *media.Image) {
	if s.previews == nil {
		return
	}
	preview, err := s.previews.Acquire(img)
	if err != nil {
		s.log.Warn("failed to create preview for %s: %v", img.Name, err)
		return
	}
	s.preview = preview
	s.state.PreviewURL = preview.URL()
}

func (s *Store) releasePreviewLocked() error {
	s.state.PreviewURL = ""
	if s.preview == nil {
		return nil
	}
	err := s.preview.Release()
	s.preview = nil
	if err != nil {
		s.log.Warn("failed to release preview: %v", err)
	}
	return err
}

// unlockAndPublish stamps the change, releases the lock and hands listeners
// the snapshot. The feed drops it for listeners that already saw a later one.
func (s *Store) unlockAndPublish() {
	s.version++
	version, snapshot := s.version, s.state.clone()
	s.mu.Unlock()

	s.feed.Publish(version, snapshot)
}

func (s *Store) notify(t toast.Type, key string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Show(t, s.tr.T(key))
}
