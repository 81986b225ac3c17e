package exam

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

func trueFalseTemplate(count int) template.Template {
	return template.Template{
		ID:   "tpl-tf",
		Name: "True/False",
		Structure: &template.Structure{Sections: []template.Section{
			{ID: "listening", Name: "Listening", Parts: []template.Part{
				{PartNo: 1, QuestionType: template.TypeTrueFalse, QuestionCount: count,
					AllowedFields: template.AllowedFields{Options: true}},
			}},
		}},
	}
}

func mixedTemplate() template.Template {
	return template.Template{
		ID: "tpl-mixed",
		Structure: &template.Structure{Sections: []template.Section{
			{ID: "listening", Name: "Listening", Parts: []template.Part{
				{PartNo: 1, QuestionType: template.TypeTrueFalse, QuestionCount: 2},
				{PartNo: 2, QuestionType: template.TypeMCQImage, QuestionCount: 3, OptionsCount: 3},
			}},
			{ID: "reading", Name: "Reading", Parts: []template.Part{
				{PartNo: 1, QuestionType: template.TypeMCQText, QuestionCount: 4, InputType: "text"},
				{PartNo: 2, QuestionType: template.TypeEssay, QuestionCount: 0},
			}},
		}},
	}
}

func TestExpandTrueFalseDefaults(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sections, err := Expand(trueFalseTemplate(3), "test-1", now)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(sections) != 1 || len(sections[0].Parts) != 1 {
		t.Fatalf("unexpected shape: %+v", sections)
	}
	sec := sections[0]
	if sec.CompletionStatus != NotStarted || sec.Parts[0].CompletionStatus != NotStarted {
		t.Fatalf("statuses: section=%s part=%s", sec.CompletionStatus, sec.Parts[0].CompletionStatus)
	}
	if !sec.IsListening {
		t.Error("listening section not flagged")
	}
	qs := sec.Parts[0].Questions
	if len(qs) != 3 {
		t.Fatalf("want 3 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.CorrectAnswer != "false" {
			t.Errorf("q%d correct_answer = %q, want \"false\"", i+1, q.CorrectAnswer)
		}
		if q.IsCompleted {
			t.Errorf("q%d should not be completed", i+1)
		}
		if q.OrderNo != i+1 {
			t.Errorf("q%d order_no = %d", i+1, q.OrderNo)
		}
		if q.PartID != sec.Parts[0].ID {
			t.Errorf("q%d part_id mismatch", i+1)
		}
		if !q.CreatedAt.Equal(now) || !q.UpdatedAt.Equal(now) {
			t.Errorf("q%d timestamps not set from clock", i+1)
		}
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	tpl := mixedTemplate()
	a, err := Expand(tpl, "test-1", time.Unix(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Expand(tpl, "test-1", time.Unix(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(collectIDs(a), collectIDs(b)) {
		t.Fatal("ids drifted between expansions")
	}
}

func TestExpandIDsAreUniqueAcrossTests(t *testing.T) {
	tpl := mixedTemplate()
	a, _ := Expand(tpl, "test-1", time.Now())
	b, _ := Expand(tpl, "test-2", time.Now())
	seen := map[string]bool{}
	for _, id := range append(collectIDs(a), collectIDs(b)...) {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestExpandShapeFollowsTemplate(t *testing.T) {
	sections, err := Expand(mixedTemplate(), "t", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	want := [][]int{{2, 3}, {4, 0}}
	for si, s := range sections {
		for pi, p := range s.Parts {
			if len(p.Questions) != want[si][pi] {
				t.Errorf("section %d part %d: %d questions, want %d", si, pi, len(p.Questions), want[si][pi])
			}
		}
	}
	if sections[1].IsListening {
		t.Error("reading flagged as listening")
	}
	if got := sections[0].Parts[1].Questions[0].CorrectAnswer; got != "" {
		t.Errorf("mcq default correct_answer = %q, want empty", got)
	}
}

func TestExpandRejectsBrokenTemplates(t *testing.T) {
	cases := map[string]template.Template{
		"nil structure": {ID: "x"},
		"no sections":   {ID: "x", Structure: &template.Structure{}},
	}
	for name, tpl := range cases {
		t.Run(name, func(t *testing.T) {
			sections, err := Expand(tpl, "t", time.Now())
			if !errors.Is(err, ErrTemplateStructureInvalid) {
				t.Fatalf("want ErrTemplateStructureInvalid, got %v", err)
			}
			if sections != nil {
				t.Fatal("partial tree returned")
			}
		})
	}
}

func TestLocate(t *testing.T) {
	sections, _ := Expand(mixedTemplate(), "t", time.Now())
	test := Test{ID: "t", Sections: sections}
	target := sections[1].Parts[0].Questions[2]
	loc, ok := test.Locate(target.ID)
	if !ok {
		t.Fatal("question not located")
	}
	if loc != (Locator{SectionIndex: 1, PartIndex: 0, QuestionIndex: 2}) {
		t.Fatalf("unexpected locator %+v", loc)
	}
	if _, ok := test.Locate("missing"); ok {
		t.Fatal("located a missing question")
	}
	if _, err := test.Question(Locator{SectionIndex: 5}); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("want ErrQuestionNotFound, got %v", err)
	}
	if _, err := test.Question(Locator{SectionIndex: 1, PartIndex: 1, QuestionIndex: 0}); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("empty part: want ErrQuestionNotFound, got %v", err)
	}
}

func collectIDs(sections []Section) []string {
	var ids []string
	for _, s := range sections {
		ids = append(ids, s.ID)
		for _, p := range s.Parts {
			ids = append(ids, p.ID)
			for _, q := range p.Questions {
				ids = append(ids, q.ID)
			}
		}
	}
	return ids
}
