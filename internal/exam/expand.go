package exam

import (
	"errors"
	"fmt"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

// DefaultCorrectAnswer is the answer a freshly expanded question carries.
// true_false questions start at the literal "false"; editors overwrite it on
// first save.
func DefaultCorrectAnswer(questionType string) string {
	if questionType == template.TypeTrueFalse {
		return "false"
	}
	return ""
}

// Expand builds the section tree of test testID from tpl. Ids are derived
// from (test, template section, part, index), so repeated expansion is
// idempotent; only the timestamps depend on now.
func Expand(tpl template.Template, testID string, now time.Time) ([]Section, error) {
	if testID == "" {
		return nil, errors.New("expand: test id required")
	}
	if err := template.Validate(tpl); err != nil {
		return nil, fmt.Errorf("expand %s: %w", tpl.ID, err)
	}

	sections := make([]Section, 0, len(tpl.Structure.Sections))
	for _, ts := range tpl.Structure.Sections {
		sid := sectionID(testID, ts.ID)
		sec := Section{
			ID:                sid,
			TestID:            testID,
			TemplateSectionID: ts.ID,
			Parts:             make([]Part, 0, len(ts.Parts)),
			CompletionStatus:  NotStarted,
			IsListening:       ts.IsListening(),
		}
		for _, tp := range ts.Parts {
			pid := partID(testID, ts.ID, tp.PartNo)
			part := Part{
				ID:                pid,
				SectionID:         sid,
				TemplateSectionID: ts.ID,
				PartNo:            tp.PartNo,
				Questions:         make([]Question, tp.QuestionCount),
				CompletionStatus:  NotStarted,
			}
			for i := range part.Questions {
				part.Questions[i] = Question{
					ID:            questionID(testID, ts.ID, tp.PartNo, i+1),
					PartID:        pid,
					OrderNo:       i + 1,
					CorrectAnswer: DefaultCorrectAnswer(tp.QuestionType),
					CreatedAt:     now,
					UpdatedAt:     now,
				}
			}
			sec.Parts = append(sec.Parts, part)
		}
		sections = append(sections, sec)
	}
	return sections, nil
}
