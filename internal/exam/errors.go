package exam

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

var (
	ErrTemplateStructureInvalid = template.ErrStructureInvalid
	ErrQuestionNotFound         = errors.New("question not found")
	ErrFieldValidationFailed    = errors.New("field validation failed")
	ErrPersistenceFailed        = errors.New("persistence failed")
	ErrNotFound                 = errors.New("test not found")
)

// FieldErrors maps a question field name to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Fields returns the failing field names in stable order.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for k := range fe {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ValidationError carries field-level messages; it matches
// ErrFieldValidationFailed under errors.Is.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "field validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrFieldValidationFailed }
