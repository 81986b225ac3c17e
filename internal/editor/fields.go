package editor

import (
	"strings"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// applyAllowed copies the draft onto q, keeping only the fields the template
// part enables. Disabled fields are cleared.
func applyAllowed(a template.AllowedFields, q exam.Question, d Draft) exam.Question {
	q.Text, q.AudioURL, q.Images, q.Options = "", "", nil, nil
	q.Explanation, q.ExplanationAudio = "", ""

	if a.Text {
		q.Text = strings.TrimSpace(d.Text)
	}
	if a.Audio {
		q.AudioURL = strings.TrimSpace(d.AudioURL)
	}
	if a.Images {
		for _, img := range d.Images {
			if !blank(img) {
				q.Images = append(q.Images, strings.TrimSpace(img))
			}
		}
	}
	if a.Options {
		q.Options = normalizeOptions(a, q.ID, d.Options)
	}
	if a.Explanation {
		q.Explanation = strings.TrimSpace(d.Explanation)
		q.ExplanationAudio = strings.TrimSpace(d.ExplanationAudio)
	}
	return q
}

// normalizeOptions labels options A, B, C... where missing and derives ids
// from the owning question.
func normalizeOptions(a template.AllowedFields, questionID string, in []exam.Option) []exam.Option {
	if len(in) == 0 {
		return nil
	}
	out := make([]exam.Option, len(in))
	for i, o := range in {
		o.Label = optionLabel(i, o)
		if o.ID == "" {
			o.ID = exam.OptionID(questionID, o.Label)
		}
		if !a.Images {
			o.ImageURL = ""
		}
		if !a.Audio {
			o.AudioURL = ""
		}
		out[i] = o
	}
	return out
}

// optionLabel is the label an option commits under: its own, trimmed, or
// the positional letter when blank.
func optionLabel(i int, o exam.Option) string {
	if l := strings.TrimSpace(o.Label); l != "" {
		return l
	}
	return label(i)
}

func label(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return label(i/26-1) + label(i%26)
}

func finish(q exam.Question, now time.Time) exam.Question {
	q.IsCompleted = true
	q.UpdatedAt = now
	return q
}
