package screen

import (
	"log/slog"
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Toast is a transient notification shown by the browser.
type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Screen  string    `json:"screen,omitempty"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(t Toast)
}

// Toasts queues notifications until the next Drain. It is safe for use
// from debounced lookups running on timer goroutines.
type Toasts struct {
	mu     sync.Mutex
	queue  []Toast
	logger *slog.Logger
}

func NewToasts(logger *slog.Logger) *Toasts {
	if logger == nil {
		logger = slog.Default()
	}
	return &Toasts{logger: logger}
}

func (t *Toasts) Notify(toast Toast) {
	if toast.At.IsZero() {
		toast.At = time.Now()
	}
	if toast.Level == LevelError {
		t.logger.Warn("screen failure", "screen", toast.Screen, "message", toast.Message)
	} else {
		t.logger.Info("screen notice", "screen", toast.Screen, "level", toast.Level, "message", toast.Message)
	}
	t.mu.Lock()
	t.queue = append(t.queue, toast)
	t.mu.Unlock()
}

// Drain returns queued toasts oldest first and empties the queue.
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.queue
	t.queue = nil
	if out == nil {
		return []Toast{}
	}
	return out
}
