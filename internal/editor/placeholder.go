package editor

import (
	"fmt"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// placeholderEditor stands in for types without an editor. It never commits.
type placeholderEditor struct {
	tag  string
	kind Kind
}

func (e placeholderEditor) QuestionType() string { return e.tag }
func (e placeholderEditor) Kind() Kind           { return e.kind }

func (e placeholderEditor) Validate(template.Part, Draft) exam.FieldErrors {
	if e.kind == KindPending {
		return exam.FieldErrors{"question_type": fmt.Sprintf("editor for %q is not available yet", e.tag)}
	}
	return exam.FieldErrors{"question_type": fmt.Sprintf("question type %q is not supported", e.tag)}
}

func (e placeholderEditor) Commit(_ template.Part, q exam.Question, _ Draft, _ time.Time) (exam.Question, error) {
	if e.kind == KindPending {
		return q, fmt.Errorf("%w: %s", ErrEditorPending, e.tag)
	}
	return q, fmt.Errorf("%w: %q", ErrUnsupportedType, e.tag)
}
