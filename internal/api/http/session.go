package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mind-engage/mindengage-mocktest/internal/completion"
	"github.com/mind-engage/mindengage-mocktest/internal/editor"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/session"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

type editingView struct {
	QuestionID    string                 `json:"question_id"`
	QuestionType  string                 `json:"question_type"`
	Kind          editor.Kind            `json:"kind"`
	AllowedFields template.AllowedFields `json:"allowed_fields"`
	OptionsCount  int                    `json:"options_count,omitempty"`
	Question      exam.Question          `json:"question"`
}

type sessionView struct {
	TestID  string             `json:"test_id"`
	State   session.State      `json:"state"`
	Dirty   bool               `json:"dirty"`
	Error   string             `json:"error,omitempty"`
	Summary completion.Summary `json:"summary"`
	Editing *editingView       `json:"editing,omitempty"`
	Test    *exam.Test         `json:"test,omitempty"`
}

func viewOf(c *session.Controller) sessionView {
	v := sessionView{TestID: c.TestID(), State: c.State(), Dirty: c.Dirty()}
	if err := c.Err(); err != nil {
		v.Error = err.Error()
	}
	if c.State() == session.StateError || c.State() == session.StateLoading {
		return v
	}
	t := c.Test()
	v.Test = &t
	v.Summary = c.Summary()
	if ed, ok := c.Editing(); ok {
		v.Editing = &editingView{
			QuestionID:    ed.QuestionID,
			QuestionType:  ed.Editor.QuestionType(),
			Kind:          ed.Editor.Kind(),
			AllowedFields: ed.Spec.AllowedFields,
			OptionsCount:  ed.Spec.OptionsCount,
			Question:      ed.Question,
		}
	}
	return v
}

// SessionHandlers exposes a Hub over HTTP. Routes live under
// /tests/{testID}/session.
type SessionHandlers struct{ Hub *Hub }

// Open loads the session (expanding the test on first use) and returns it.
// A failed load answers with the error and leaves the session retryable.
func (h SessionHandlers) Open(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, "testID")
	var v sessionView
	err := h.Hub.Open(r.Context(), testID, func(c *session.Controller) error {
		v = viewOf(c)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(*session.Controller) error { return nil })
}

func (h SessionHandlers) Retry(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(c *session.Controller) error { return c.Retry(r.Context()) })
}

func (h SessionHandlers) Close(w http.ResponseWriter, r *http.Request) {
	if !h.Hub.Close(chi.URLParam(r, "testID")) {
		writeError(w, errNoSession)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionHandlers) OpenQuestion(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(c *session.Controller) error {
		_, err := c.Open(chi.URLParam(r, "questionID"))
		return err
	})
}

func (h SessionHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(c *session.Controller) error { return c.Cancel() })
}

func (h SessionHandlers) Commit(w http.ResponseWriter, r *http.Request) {
	var d editor.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.with(w, r, func(c *session.Controller) error {
		_, err := c.Commit(d)
		return err
	})
}

func (h SessionHandlers) SectionAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioURL string `json:"audio_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.with(w, r, func(c *session.Controller) error {
		return c.SetSectionAudio(chi.URLParam(r, "sectionID"), req.AudioURL)
	})
}

func (h SessionHandlers) Save(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(c *session.Controller) error {
		_, err := c.Save(r.Context())
		return err
	})
}

// with runs fn on the open session and answers with the resulting view.
func (h SessionHandlers) with(w http.ResponseWriter, r *http.Request, fn func(*session.Controller) error) {
	var v sessionView
	err := h.Hub.With(chi.URLParam(r, "testID"), func(c *session.Controller) error {
		if err := fn(c); err != nil {
			return err
		}
		v = viewOf(c)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
