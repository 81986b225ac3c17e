package exam

import (
	"context"
	"errors"
	"sync"
	"time"
)

type memoryStore struct {
	mu    sync.RWMutex
	tests map[string]Test
	now   func() time.Time
}

func NewInMemoryStore() Store {
	return &memoryStore{tests: map[string]Test{}, now: time.Now}
}

func (m *memoryStore) CreateTest(_ context.Context, t Test) error {
	if t.ID == "" {
		return errors.New("test id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tests[t.ID]; ok {
		return errors.New("test already exists")
	}
	if t.Status == "" {
		t.Status = StatusDraft
	}
	t.Sections = cloneSections(t.Sections)
	m.tests[t.ID] = t
	return nil
}

func (m *memoryStore) GetTest(_ context.Context, id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return Test{}, ErrNotFound
	}
	t.Sections = cloneSections(t.Sections)
	return t, nil
}

func (m *memoryStore) SaveTest(_ context.Context, id string, req SaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tests[id]
	if !ok {
		return ErrNotFound
	}
	t.Sections = cloneSections(req.Sections)
	t.Status = req.Status
	t.CompletionPercentage = req.CompletionPercentage
	t.UpdatedAt = m.now()
	m.tests[id] = t
	return nil
}

// cloneSections copies every slice of the tree, keeping ids.
func cloneSections(in []Section) []Section {
	if in == nil {
		return nil
	}
	out := make([]Section, len(in))
	for si, s := range in {
		parts := make([]Part, len(s.Parts))
		for pi, p := range s.Parts {
			qs := make([]Question, len(p.Questions))
			for qi, q := range p.Questions {
				q.Images = append([]string(nil), q.Images...)
				q.Options = append([]Option(nil), q.Options...)
				qs[qi] = q
			}
			p.Questions = qs
			parts[pi] = p
		}
		s.Parts = parts
		out[si] = s
	}
	return out
}
