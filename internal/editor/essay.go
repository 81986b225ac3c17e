package editor

import (
	"strings"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// essayEditor stores a free-form sample answer in CorrectAnswer; graders use
// it as a reference, not as an exact-match key.
type essayEditor struct{}

func (essayEditor) QuestionType() string { return template.TypeEssay }
func (essayEditor) Kind() Kind           { return KindEditable }

func (essayEditor) Validate(spec template.Part, d Draft) exam.FieldErrors {
	a := spec.AllowedFields
	fe := exam.FieldErrors{}
	if a.Text && blank(d.Text) {
		fe.Add("text", "question text is required")
	}
	if a.Images {
		n := 0
		for _, img := range d.Images {
			if !blank(img) {
				n++
			}
		}
		if n == 0 {
			fe.Add("images", "at least one image is required")
		}
	}
	return nilIfEmpty(fe)
}

func (e essayEditor) Commit(spec template.Part, q exam.Question, d Draft, now time.Time) (exam.Question, error) {
	if fe := e.Validate(spec, d); fe != nil {
		return q, &exam.ValidationError{Fields: fe}
	}
	d.Options = nil
	out := applyAllowed(spec.AllowedFields, q, d)
	out.CorrectAnswer = strings.TrimSpace(d.CorrectAnswer)
	return finish(out, now), nil
}
