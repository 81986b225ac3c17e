package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/session"
	syncx "github.com/mind-engage/mindengage-mocktest/internal/sync"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

type createTestReq struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TemplateID string `json:"template_id"`
}

// CreateTestHandler registers an empty test. The tree is expanded from the
// template when a session first opens it.
func CreateTestHandler(tests exam.Store, templates template.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTestReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.TemplateID != "" {
			if _, err := templates.GetTemplate(r.Context(), req.TemplateID); err != nil {
				writeError(w, err)
				return
			}
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		t := exam.Test{
			ID:         req.ID,
			Title:      strings.TrimSpace(req.Title),
			TemplateID: req.TemplateID,
			Status:     exam.StatusDraft,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tests.CreateTest(r.Context(), t); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func GetTestHandler(tests exam.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := tests.GetTest(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

// DuplicateTestHandler copies the stored tree of {testID} under fresh ids.
func DuplicateTestHandler(tests exam.Store, events session.EventSink, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title string `json:"title"`
		}
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad json", http.StatusBadRequest)
				return
			}
		}
		src, err := tests.GetTest(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			writeError(w, err)
			return
		}
		dup := exam.Duplicate(src, strings.TrimSpace(req.Title), time.Now().UTC())
		if err := tests.CreateTest(r.Context(), dup); err != nil {
			writeError(w, fmt.Errorf("%w: %w", exam.ErrPersistenceFailed, err))
			return
		}
		if events != nil {
			ev, err := syncx.NewEvent(syncx.TypeTestDuplicated, dup.ID, map[string]string{"source_id": src.ID})
			if err == nil {
				err = events.Append(r.Context(), ev)
			}
			if err != nil && logger != nil {
				logger.Warn("event append failed", "test_id", dup.ID, "err", err)
			}
		}
		writeJSON(w, http.StatusCreated, dup)
	}
}
