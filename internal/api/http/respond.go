package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/mindengage-mocktest/internal/editor"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/session"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

var errNoSession = errors.New("no open session for test")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto status codes. Validation failures carry
// the per-field messages so the editor can highlight them.
func writeError(w http.ResponseWriter, err error) {
	var verr *exam.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error(), "fields": verr.Fields})
	case errors.Is(err, exam.ErrTemplateStructureInvalid):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, exam.ErrNotFound), errors.Is(err, template.ErrNotFound),
		errors.Is(err, exam.ErrQuestionNotFound), errors.Is(err, errNoSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, editor.ErrEditorPending), errors.Is(err, editor.ErrUnsupportedType):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, exam.ErrPersistenceFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
