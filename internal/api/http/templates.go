package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// PutTemplateHandler publishes a template under {templateID}. Structures that
// would not expand are rejected up front.
func PutTemplateHandler(store template.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t template.Template
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		t.ID = chi.URLParam(r, "templateID")
		if err := template.Validate(t); err != nil {
			writeError(w, err)
			return
		}
		if t.CreatedAt == 0 {
			t.CreatedAt = time.Now().Unix()
		}
		if err := store.PutTemplate(r.Context(), t); err != nil {
			writeError(w, fmt.Errorf("put template: %w", err))
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func GetTemplateHandler(store template.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := store.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}
