// Package toast holds transient, self-expiring user notifications.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/PneumoDetect/internal/pubsub"
)

// Type categorizes a notification
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// DefaultDuration is how long a toast lives when no duration is given
const DefaultDuration = 5000 * time.Millisecond

// Toast is one live notification
type Toast struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	Message   string        `json:"message"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Listener receives the full live set after every change
type Listener func([]Toast)

// Timer is the part of *time.Timer the store needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Store
type Option func(*Store)

// WithAfterFunc replaces the timer source
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Store) {
		s.afterFunc = fn
	}
}

// WithDefaultDuration overrides DefaultDuration
func WithDefaultDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.defaultDuration = d
		}
	}
}

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a publish/subscribe list of notifications
type Store struct {
	mu              sync.Mutex
	toasts          []Toast
	version         uint64
	timers          map[string]Timer
	feed            pubsub.Feed[[]Toast]
	defaultDuration time.Duration
	afterFunc       AfterFunc
	now             func() time.Time
}

// NewStore creates an empty notification store
func NewStore(opts ...Option) *Store {
	s := &Store{
		timers:          make(map[string]Timer),
		defaultDuration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show adds a toast with the default duration and returns its id
func (s *Store) Show(t Type, message string) string {
	return s.ShowFor(t, message, 0)
}

// ShowFor adds a toast that expires after d; d <= 0 means the default duration
func (s *Store) ShowFor(t Type, message string, d time.Duration) string {
	if d <= 0 {
		d = s.defaultDuration
	}
	id := uuid.New().String()

	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{
		ID:        id,
		Type:      t,
		Message:   message,
		Duration:  d,
		CreatedAt: s.now(),
	})
	s.timers[id] = s.afterFunc(d, func() { s.expire(id) })
	s.unlockAndPublish()
	return id
}

// Dismiss removes a toast; unknown ids are ignored
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return
	}
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	s.unlockAndPublish()
}

// Subscribe registers a listener, calls it once with the current set,
// and returns a function that unregisters it
func (s *Store) Subscribe(listener Listener) func() {
	s.mu.Lock()
	version, snapshot := s.version, s.copyLocked()
	s.mu.Unlock()

	return s.feed.Subscribe(version, snapshot, listener)
}

// List returns the live toasts in creation order
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Close stops all pending expiry timers
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) expire(id string) {
	s.mu.Lock()
	delete(s.timers, id)
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return
	}
	s.unlockAndPublish()
}

func (s *Store) removeLocked(id string) bool {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) copyLocked() []Toast {
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// unlockAndPublish runs listeners outside the store lock so they may call
// back into the store. Expiry timers publish from their own goroutines, so
// snapshots carry a version and stale ones are dropped.
func (s *Store) unlockAndPublish() {
	s.version++
	version, snapshot := s.version, s.copyLocked()
	s.mu.Unlock()

	s.feed.Publish(version, snapshot)
}
