package http

import (
	"context"
	"sync"

	"github.com/mind-engage/mindengage-mocktest/internal/session"
)

// Hub keeps one session controller per test id and serialises access to it.
type Hub struct {
	deps session.Deps

	mu       sync.Mutex
	sessions map[string]*hubEntry
}

type hubEntry struct {
	mu sync.Mutex
	c  *session.Controller
}

func NewHub(deps session.Deps) *Hub {
	return &Hub{deps: deps, sessions: map[string]*hubEntry{}}
}

func (h *Hub) entry(testID string, create bool) *hubEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sessions[testID]
	if !ok && create {
		e = &hubEntry{c: session.New(testID, h.deps)}
		h.sessions[testID] = e
	}
	return e
}

// Open returns the session for testID, loading it on first use. A failed
// load leaves the session in the error state so it can be retried.
func (h *Hub) Open(ctx context.Context, testID string, fn func(*session.Controller) error) error {
	e := h.entry(testID, true)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.c.State() == session.StateLoading {
		if err := e.c.Load(ctx); err != nil {
			return err
		}
	}
	return fn(e.c)
}

// With runs fn against an already open session.
func (h *Hub) With(testID string, fn func(*session.Controller) error) error {
	e := h.entry(testID, false)
	if e == nil {
		return errNoSession
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.c)
}

// Close drops the session; unsaved edits are discarded.
func (h *Hub) Close(testID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[testID]; !ok {
		return false
	}
	delete(h.sessions, testID)
	return true
}
