// Package completion derives part, section and test completion from the
// questions' IsCompleted flags. Every function is pure: inputs are never
// mutated and question content is never touched.
package completion

import (
	"math"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
)

// PartStatus applies the tri-state rule to a part's questions. A part
// without questions is not_started.
func PartStatus(p exam.Part) exam.CompletionStatus {
	done := 0
	for _, q := range p.Questions {
		if q.IsCompleted {
			done++
		}
	}
	return triState(done, len(p.Questions))
}

// SectionStatus applies the same rule one level up, over part statuses.
func SectionStatus(parts []exam.Part) exam.CompletionStatus {
	completed, notStarted := 0, 0
	for _, p := range parts {
		switch p.CompletionStatus {
		case exam.Completed:
			completed++
		case exam.NotStarted, "":
			notStarted++
		}
	}
	switch {
	case len(parts) == 0 || notStarted == len(parts):
		return exam.NotStarted
	case completed == len(parts):
		return exam.Completed
	default:
		return exam.InProgress
	}
}

func triState(done, total int) exam.CompletionStatus {
	switch {
	case done == 0:
		return exam.NotStarted
	case done == total:
		return exam.Completed
	default:
		return exam.InProgress
	}
}

// RecomputePart returns p with its status derived from its questions.
func RecomputePart(p exam.Part) exam.Part {
	p.CompletionStatus = PartStatus(p)
	return p
}

// RecomputeSection returns a copy of s with every part status and the
// section status derived. Question slices are shared with the input.
func RecomputeSection(s exam.Section) exam.Section {
	parts := make([]exam.Part, len(s.Parts))
	for i, p := range s.Parts {
		parts[i] = RecomputePart(p)
	}
	s.Parts = parts
	s.CompletionStatus = SectionStatus(parts)
	return s
}

// Summary is the whole-test completion snapshot used on save.
type Summary struct {
	TotalQuestions     int             `json:"total_questions"`
	CompletedQuestions int             `json:"completed_questions"`
	Percentage         int             `json:"completion_percentage"`
	Status             exam.TestStatus `json:"completion_status"`
}

func Summarize(t exam.Test) Summary {
	var s Summary
	for _, sec := range t.Sections {
		for _, p := range sec.Parts {
			for _, q := range p.Questions {
				s.TotalQuestions++
				if q.IsCompleted {
					s.CompletedQuestions++
				}
			}
		}
	}
	s.Percentage = Percentage(s.CompletedQuestions, s.TotalQuestions)
	s.Status = StatusForPercentage(s.Percentage)
	return s
}

// Percentage is round(100*completed/total); 0 when total is 0. completed is
// bounded to 0..total so the result stays within 0..100.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	completed = min(max(completed, 0), total)
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// StatusForPercentage maps a percentage to draft, incomplete or completed.
// reviewed is a manual promotion and is never produced here.
func StatusForPercentage(pct int) exam.TestStatus {
	switch {
	case pct <= 0:
		return exam.StatusDraft
	case pct >= 100:
		return exam.StatusCompleted
	default:
		return exam.StatusIncomplete
	}
}

// RecomputeTest returns t with every section recomputed and the test-level
// percentage and status refreshed.
func RecomputeTest(t exam.Test) exam.Test {
	if t.Sections != nil {
		sections := make([]exam.Section, len(t.Sections))
		for i, s := range t.Sections {
			sections[i] = RecomputeSection(s)
		}
		t.Sections = sections
	}
	sum := Summarize(t)
	t.CompletionPercentage = sum.Percentage
	t.Status = sum.Status
	return t
}
