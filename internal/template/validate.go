package template

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructureInvalid is returned for a missing or malformed structure.
var ErrStructureInvalid = errors.New("template structure invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructureInvalid, fmt.Sprintf(format, args...))
}

// Validate runs the structural checks expansion depends on.
func Validate(t Template) error {
	if t.Structure == nil {
		return invalid("template %q has no structure", t.ID)
	}
	if len(t.Structure.Sections) == 0 {
		return invalid("template %q has no sections", t.ID)
	}
	seen := map[string]bool{}
	for i, s := range t.Structure.Sections {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return invalid("section #%d: id is required", i+1)
		}
		if seen[id] {
			return invalid("duplicate section id: %s", id)
		}
		seen[id] = true

		partSeen := map[int]bool{}
		for _, p := range s.Parts {
			if partSeen[p.PartNo] {
				return invalid("duplicate part %d in section %s", p.PartNo, id)
			}
			partSeen[p.PartNo] = true
			if strings.TrimSpace(p.QuestionType) == "" {
				return invalid("part %d in section %s: question_type is required", p.PartNo, id)
			}
			if p.QuestionCount < 0 {
				return invalid("negative question_count in %s/%d", id, p.PartNo)
			}
			if p.OptionsCount < 0 {
				return invalid("negative options_count in %s/%d", id, p.PartNo)
			}
		}
	}
	return nil
}
