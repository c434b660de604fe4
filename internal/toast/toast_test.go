package toast

import (
	"sync"
	"testing"
	"time"
)

// fakeClock fires scheduled callbacks when advanced
type fakeClock struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now + d, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.pending {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{}
	return NewStore(WithAfterFunc(clock.AfterFunc)), clock
}

func TestShowReturnsUniqueIDs(t *testing.T) {
	store, _ := newTestStore()

	first := store.Show(TypeInfo, "one")
	second := store.Show(TypeInfo, "two")

	if first == "" || second == "" {
		t.Fatal("Expected non-empty ids")
	}
	if first == second {
		t.Errorf("Expected unique ids, both were %s", first)
	}

	toasts := store.List()
	if len(toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "one" || toasts[1].Message != "two" {
		t.Errorf("Expected creation order, got %q then %q", toasts[0].Message, toasts[1].Message)
	}
	if toasts[0].Duration != DefaultDuration {
		t.Errorf("Expected default duration %v, got %v", DefaultDuration, toasts[0].Duration)
	}
}

func TestToastExpires(t *testing.T) {
	store, clock := newTestStore()

	var latest []Toast
	unsubscribe := store.Subscribe(func(toasts []Toast) { latest = toasts })
	defer unsubscribe()

	id := store.ShowFor(TypeSuccess, "done", 100*time.Millisecond)
	if len(latest) != 1 || latest[0].ID != id {
		t.Fatalf("Expected toast %s to be present immediately, got %+v", id, latest)
	}

	clock.Advance(99 * time.Millisecond)
	if len(latest) != 1 {
		t.Fatalf("Expected toast to survive before its duration, got %d", len(latest))
	}

	clock.Advance(1 * time.Millisecond)
	if len(latest) != 0 {
		t.Errorf("Expected toast to expire after 100ms, still have %d", len(latest))
	}
}

func TestDismiss(t *testing.T) {
	store, clock := newTestStore()

	calls := 0
	store.Subscribe(func([]Toast) { calls++ })

	id := store.Show(TypeError, "boom")
	store.Dismiss(id)

	if len(store.List()) != 0 {
		t.Error("Expected toast to be dismissed")
	}
	// replay + show + dismiss
	if calls != 3 {
		t.Errorf("Expected 3 listener calls, got %d", calls)
	}

	store.Dismiss("does-not-exist")
	if calls != 3 {
		t.Errorf("Expected unknown id dismissal to be a no-op, got %d calls", calls)
	}

	clock.Advance(DefaultDuration)
	if calls != 3 {
		t.Errorf("Expected no expiry notification for a dismissed toast, got %d calls", calls)
	}
}

func TestSubscribeReplaysAndUnsubscribes(t *testing.T) {
	store, _ := newTestStore()
	store.Show(TypeInfo, "existing")

	var got [][]Toast
	unsubscribe := store.Subscribe(func(toasts []Toast) { got = append(got, toasts) })

	if len(got) != 1 || len(got[0]) != 1 || got[0][0].Message != "existing" {
		t.Fatalf("Expected replay of the current set on subscribe, got %+v", got)
	}

	unsubscribe()
	unsubscribe()
	store.Show(TypeInfo, "after")

	if len(got) != 1 {
		t.Errorf("Expected no calls after unsubscribe, got %d", len(got))
	}
}

func TestListenerMayCallBackIntoStore(t *testing.T) {
	store, _ := newTestStore()

	store.Subscribe(func(toasts []Toast) {
		for _, toast := range toasts {
			if toast.Type == TypeError {
				store.Dismiss(toast.ID)
			}
		}
	})

	store.Show(TypeError, "auto dismissed")
	if n := len(store.List()); n != 0 {
		t.Errorf("Expected listener to dismiss the toast, %d left", n)
	}
}

func TestSlowListenerSeesLatestSet(t *testing.T) {
	store, _ := newTestStore()

	entered := make(chan string)
	release := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	var last []Toast

	store.Subscribe(func(toasts []Toast) {
		if len(toasts) == 1 {
			once.Do(func() {
				entered <- toasts[0].ID
				<-release
			})
		}
		mu.Lock()
		last = toasts
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Show(TypeInfo, "slow")
	}()
	id := <-entered

	dismissed := make(chan struct{})
	go func() {
		store.Dismiss(id)
		close(dismissed)
	}()
	select {
	case <-dismissed:
	case <-time.After(time.Second):
		t.Fatal("Expected Dismiss to return while a listener is busy")
	}

	close(release)
	<-done

	if n := len(store.List()); n != 0 {
		t.Fatalf("Expected no toasts left, got %d", n)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(last) != 0 {
		t.Errorf("Expected last delivered set to be empty, got %+v", last)
	}
}

func TestRealTimerExpiry(t *testing.T) {
	store := NewStore()
	defer store.Close()

	done := make(chan struct{})
	var once sync.Once
	store.ShowFor(TypeInfo, "short", 10*time.Millisecond)
	store.Subscribe(func(toasts []Toast) {
		if len(toasts) == 0 {
			once.Do(func() { close(done) })
		}
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for toast expiry")
	}
}
