package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

// Animation message
type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// stateMsg carries the newest store snapshot
type stateMsg app.State

// toastsMsg carries the newest list of live notifications
type toastsMsg []toast.Toast

// latest is a one-slot mailbox that keeps only the most recent value.
// Publishers never block, so store and toast listeners can fire from any goroutine.
type latest[T any] struct {
	ch   chan T
	done chan struct{}
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{
		ch:   make(chan T, 1),
		done: make(chan struct{}),
	}
}

// put replaces whatever value is waiting
func (l *latest[T]) put(v T) {
	for {
		select {
		case <-l.done:
			return
		case l.ch <- v:
			return
		default:
		}
		// slot full: drop the stale value and retry
		select {
		case <-l.ch:
		default:
		}
	}
}

// close wakes any pending wait; later puts are dropped
func (l *latest[T]) close() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// waitFor blocks until a value arrives and wraps it as a message
func waitFor[T any](l *latest[T], wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-l.ch:
			return wrap(v)
		case <-l.done:
			return nil
		}
	}
}
