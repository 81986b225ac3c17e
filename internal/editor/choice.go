package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// choiceEditor covers single-answer multiple choice. optionImages switches on
// the per-option image requirement of mcq_image.
type choiceEditor struct {
	tag          string
	optionImages bool
}

func (e choiceEditor) QuestionType() string { return e.tag }
func (choiceEditor) Kind() Kind             { return KindEditable }

func (e choiceEditor) Validate(spec template.Part, d Draft) exam.FieldErrors {
	a := spec.AllowedFields
	fe := exam.FieldErrors{}
	if a.Audio && blank(d.AudioURL) {
		fe.Add("audio_url", "audio is required")
	}
	if !a.Options {
		// no option list on this part: the key is entered directly
		if blank(d.CorrectAnswer) {
			fe.Add("correct_answer", "correct answer is required")
		}
		return nilIfEmpty(fe)
	}

	if len(d.Options) == 0 {
		fe.Add("options", "options are required")
		return fe
	}
	if spec.OptionsCount > 0 && len(d.Options) != spec.OptionsCount {
		fe.Add("options", fmt.Sprintf("expected %d options, got %d", spec.OptionsCount, len(d.Options)))
	}
	correct := 0
	seen := make(map[string]int, len(d.Options))
	for i, o := range d.Options {
		if o.IsCorrect {
			correct++
		}
		l := optionLabel(i, o)
		if j, dup := seen[l]; dup {
			fe.Add(fmt.Sprintf("options[%d].label", i), fmt.Sprintf("label %s already used by options[%d]", l, j))
		} else {
			seen[l] = i
		}
		imageRequired := e.optionImages && a.Images
		if imageRequired && blank(o.ImageURL) {
			fe.Add(fmt.Sprintf("options[%d].image_url", i), "image is required")
		}
		if !imageRequired && blank(o.Text) && (blank(o.ImageURL) || !a.Images) {
			fe.Add(fmt.Sprintf("options[%d].text", i), "option text is required")
		}
	}
	if correct != 1 {
		fe.Add("correct_answer", fmt.Sprintf("exactly one option must be correct, got %d", correct))
	}
	return nilIfEmpty(fe)
}

func (e choiceEditor) Commit(spec template.Part, q exam.Question, d Draft, now time.Time) (exam.Question, error) {
	if fe := e.Validate(spec, d); fe != nil {
		return q, &exam.ValidationError{Fields: fe}
	}
	out := applyAllowed(spec.AllowedFields, q, d)
	if spec.AllowedFields.Options {
		for _, o := range out.Options {
			if o.IsCorrect {
				out.CorrectAnswer = o.Label
				break
			}
		}
	} else {
		out.CorrectAnswer = strings.TrimSpace(d.CorrectAnswer)
	}
	return finish(out, now), nil
}

func nilIfEmpty(fe exam.FieldErrors) exam.FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
