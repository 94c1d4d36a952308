// Package workspace keeps one set of screen instances per browser session.
// Screens never share state, across sessions or within one.
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hrmconsole/internal/domain/screen"
)

// Workspace is one session: its mounted screens and pending toasts.
type Workspace struct {
	ID     string
	Toasts *screen.Toasts

	mu       sync.Mutex
	screens  map[string]*screen.Screen
	lastSeen time.Time
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.screens {
		s.Close()
	}
	w.screens = map[string]*screen.Screen{}
}

type Manager struct {
	registry *Registry
	backend  screen.Backend
	debounce time.Duration
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Workspace
}

func NewManager(registry *Registry, b screen.Backend, debounce, ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		backend:  b,
		debounce: debounce,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: map[string]*Workspace{},
	}
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

// Workspace returns the session's workspace, creating it on first use.
func (m *Manager) Workspace(id string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[id]
	if !ok {
		w = &Workspace{
			ID:      id,
			Toasts:  screen.NewToasts(m.logger.With("session", id)),
			screens: map[string]*screen.Screen{},
		}
		m.sessions[id] = w
	}
	w.touch(m.now())
	return w
}

// Screen returns the session's instance of a screen, mounting it the first
// time it is opened.
func (m *Manager) Screen(ctx context.Context, w *Workspace, name string) (*screen.Screen, error) {
	s, created, err := m.open(w, name)
	if err != nil {
		return nil, err
	}
	if created {
		s.Mount(ctx)
	}
	return s, nil
}

// Mount opens the screen and loads it afresh even when it was already open.
func (m *Manager) Mount(ctx context.Context, w *Workspace, name string) (*screen.Screen, error) {
	s, _, err := m.open(w, name)
	if err != nil {
		return nil, err
	}
	s.Mount(ctx)
	return s, nil
}

func (m *Manager) open(w *Workspace, name string) (*screen.Screen, bool, error) {
	def, err := m.registry.Lookup(name)
	if err != nil {
		return nil, false, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.screens[name]
	if !ok {
		s = screen.New(def, m.backend, w.Toasts, screen.WithDebounce(m.debounce))
		w.screens[name] = s
	}
	return s, !ok, nil
}

// Sweep closes workspaces idle for longer than the TTL.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)
	var expired []*Workspace
	m.mu.Lock()
	for id, w := range m.sessions {
		if w.idleSince().Before(cutoff) {
			expired = append(expired, w)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, w := range expired {
		w.close()
	}
	return len(expired)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
