package template

import (
	"context"
	"errors"
	"testing"
)

func validTemplate() Template {
	return Template{
		ID:   "t1",
		Name: "Test",
		Structure: &Structure{Sections: []Section{
			{ID: "listening", Name: "Listening", Parts: []Part{
				{PartNo: 1, QuestionType: TypeTrueFalse, QuestionCount: 3},
			}},
		}},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Template)
		ok     bool
	}{
		{"valid", func(*Template) {}, true},
		{"nil structure", func(t *Template) { t.Structure = nil }, false},
		{"no sections", func(t *Template) { t.Structure.Sections = nil }, false},
		{"empty section id", func(t *Template) { t.Structure.Sections[0].ID = " " }, false},
		{"duplicate section", func(t *Template) {
			t.Structure.Sections = append(t.Structure.Sections, t.Structure.Sections[0])
		}, false},
		{"duplicate part", func(t *Template) {
			s := &t.Structure.Sections[0]
			s.Parts = append(s.Parts, s.Parts[0])
		}, false},
		{"missing type", func(t *Template) { t.Structure.Sections[0].Parts[0].QuestionType = "" }, false},
		{"negative count", func(t *Template) { t.Structure.Sections[0].Parts[0].QuestionCount = -1 }, false},
		{"zero count is fine", func(t *Template) { t.Structure.Sections[0].Parts[0].QuestionCount = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tpl := validTemplate()
			tc.mutate(&tpl)
			err := Validate(tpl)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrStructureInvalid) {
				t.Fatalf("want ErrStructureInvalid, got %v", err)
			}
		})
	}
}

func TestSamplesAreValid(t *testing.T) {
	for _, s := range Samples() {
		if err := Validate(s); err != nil {
			t.Errorf("sample %s: %v", s.ID, err)
		}
	}
}

func TestPartLookup(t *testing.T) {
	tpl := validTemplate()
	p, ok := tpl.Part("listening", 1)
	if !ok || p.QuestionType != TypeTrueFalse {
		t.Fatalf("lookup failed: %+v %v", p, ok)
	}
	if _, ok := tpl.Part("listening", 2); ok {
		t.Fatal("part 2 should not resolve")
	}
	if _, ok := tpl.Part("reading", 1); ok {
		t.Fatal("unknown section should not resolve")
	}
}

func TestIsListening(t *testing.T) {
	if !(Section{Name: "Phần Nghe"}).IsListening() {
		t.Error("vietnamese listening name not detected")
	}
	if !(Section{Name: "听力"}).IsListening() {
		t.Error("chinese listening name not detected")
	}
	if !(Section{Name: "Part A", Parts: []Part{{InputType: "Audio"}}}).IsListening() {
		t.Error("audio input type not detected")
	}
	if (Section{Name: "Reading", Parts: []Part{{InputType: "text"}}}).IsListening() {
		t.Error("reading detected as listening")
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	tpl := validTemplate()
	if err := store.PutTemplate(ctx, tpl); err != nil {
		t.Fatal(err)
	}
	tpl.Structure.Sections[0].Parts[0].QuestionCount = 99

	got, err := store.GetTemplate(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Structure.Sections[0].Parts[0].QuestionCount != 3 {
		t.Fatal("stored template was mutated through caller's slice")
	}
	got.Structure.Sections[0].Name = "changed"
	again, _ := store.GetTemplate(ctx, "t1")
	if again.Structure.Sections[0].Name != "Listening" {
		t.Fatal("stored template was mutated through returned slice")
	}

	if _, err := store.GetTemplate(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
