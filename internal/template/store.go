package template

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("template not found")

// Store is the read side used by expansion plus the write side used to seed
// and publish templates.
type Store interface {
	GetTemplate(ctx context.Context, id string) (Template, error)
	PutTemplate(ctx context.Context, t Template) error
}

type memoryStore struct {
	mu        sync.RWMutex
	templates map[string]Template
}

func NewInMemoryStore() Store {
	return &memoryStore{templates: map[string]Template{}}
}

func (m *memoryStore) PutTemplate(_ context.Context, t Template) error {
	if t.ID == "" {
		return errors.New("template id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t.Clone()
	return nil
}

func (m *memoryStore) GetTemplate(_ context.Context, id string) (Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	if !ok {
		return Template{}, ErrNotFound
	}
	return t.Clone(), nil
}

// Clone returns a deep copy so callers can never reach stored slices.
func (t Template) Clone() Template {
	if t.Structure == nil {
		return t
	}
	st := &Structure{Sections: make([]Section, len(t.Structure.Sections))}
	for i, s := range t.Structure.Sections {
		s.Parts = append([]Part(nil), s.Parts...)
		st.Sections[i] = s
	}
	t.Structure = st
	return t
}
