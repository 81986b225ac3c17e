package editor

import (
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// Canonical true/false options.
const (
	LabelTrue  = "A"
	LabelFalse = "B"
	TextTrue   = "Đúng"
	TextFalse  = "Sai"
)

type trueFalseEditor struct{}

func (trueFalseEditor) QuestionType() string { return template.TypeTrueFalse }
func (trueFalseEditor) Kind() Kind           { return KindEditable }

func (trueFalseEditor) Validate(_ template.Part, d Draft) exam.FieldErrors {
	if d.Answer == nil {
		return exam.FieldErrors{"correct_answer": "choose true or false"}
	}
	return nil
}

func (e trueFalseEditor) Commit(spec template.Part, q exam.Question, d Draft, now time.Time) (exam.Question, error) {
	if fe := e.Validate(spec, d); fe != nil {
		return q, &exam.ValidationError{Fields: fe}
	}
	// options are synthesized, never taken from the draft
	d.Options = nil
	out := applyAllowed(spec.AllowedFields, q, d)

	answer := *d.Answer
	if spec.AllowedFields.Options {
		out.Options = []exam.Option{
			{ID: exam.OptionID(q.ID, LabelTrue), Label: LabelTrue, Text: TextTrue, IsCorrect: answer},
			{ID: exam.OptionID(q.ID, LabelFalse), Label: LabelFalse, Text: TextFalse, IsCorrect: !answer},
		}
	}
	out.CorrectAnswer = LabelFalse
	if answer {
		out.CorrectAnswer = LabelTrue
	}
	return finish(out, now), nil
}
