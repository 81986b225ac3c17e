// Package editor dispatches question edits to the editor registered for the
// question's type tag.
package editor

import (
	"errors"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

var (
	ErrEditorPending   = errors.New("editor pending for question type")
	ErrUnsupportedType = errors.New("unsupported question type")
)

// Kind tells the presentation layer what to render for a question type.
type Kind string

const (
	KindEditable    Kind = "editable"
	KindPending     Kind = "pending"     // declared type, editor not built yet
	KindUnsupported Kind = "unsupported" // unknown type tag
)

// Draft holds the fields the author filled in. Asset fields carry resource
// references returned by the upload collaborator.
type Draft struct {
	Text             string        `json:"text,omitempty"`
	AudioURL         string        `json:"audio_url,omitempty"`
	Images           []string      `json:"images,omitempty"`
	Options          []exam.Option `json:"options,omitempty"`
	Explanation      string        `json:"explanation,omitempty"`
	ExplanationAudio string        `json:"explanation_audio,omitempty"`
	CorrectAnswer    string        `json:"correct_answer,omitempty"`
	Answer           *bool         `json:"answer,omitempty"` // true_false choice
}

// Editor validates and commits drafts for one question type. spec is the
// owning template part; only fields enabled by spec.AllowedFields persist.
type Editor interface {
	QuestionType() string
	Kind() Kind
	// Validate returns nil when the draft may be committed.
	Validate(spec template.Part, d Draft) exam.FieldErrors
	// Commit validates d and returns the completed question. On failure the
	// input question is returned unchanged with a *exam.ValidationError or
	// an editor-kind error.
	Commit(spec template.Part, q exam.Question, d Draft, now time.Time) (exam.Question, error)
}

type Registry struct {
	editors map[string]Editor
}

func NewRegistry() *Registry {
	return &Registry{editors: map[string]Editor{}}
}

// NewDefaultRegistry installs the built-in editors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(choiceEditor{tag: template.TypeMCQImage, optionImages: true})
	r.Register(choiceEditor{tag: template.TypeMCQText})
	r.Register(trueFalseEditor{})
	r.Register(essayEditor{})
	for _, tag := range []string{template.TypeMatchImage, template.TypePair, template.TypeFillBlank} {
		r.Register(placeholderEditor{tag: tag, kind: KindPending})
	}
	return r
}

// Register adds or replaces the editor for e.QuestionType().
func (r *Registry) Register(e Editor) {
	if e == nil || e.QuestionType() == "" {
		return
	}
	r.editors[e.QuestionType()] = e
}

// Select never fails: unknown tags get the unsupported variant.
func (r *Registry) Select(questionType string) Editor {
	if e, ok := r.editors[questionType]; ok {
		return e
	}
	return placeholderEditor{tag: questionType, kind: KindUnsupported}
}
