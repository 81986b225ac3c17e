package editor

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func blankQuestion() exam.Question {
	return exam.Question{ID: "q1", PartID: "p1", OrderNo: 1, CorrectAnswer: ""}
}

func boolPtr(b bool) *bool { return &b }

func TestSelectVariants(t *testing.T) {
	r := NewDefaultRegistry()
	cases := map[string]Kind{
		template.TypeMCQImage:   KindEditable,
		template.TypeMCQText:    KindEditable,
		template.TypeTrueFalse:  KindEditable,
		template.TypeEssay:      KindEditable,
		template.TypeMatchImage: KindPending,
		template.TypePair:       KindPending,
		template.TypeFillBlank:  KindPending,
		"speaking_free":         KindUnsupported,
	}
	for tag, want := range cases {
		e := r.Select(tag)
		if e.Kind() != want {
			t.Errorf("%s: kind %s, want %s", tag, e.Kind(), want)
		}
		if e.QuestionType() != tag {
			t.Errorf("%s: editor reports type %s", tag, e.QuestionType())
		}
	}
}

func TestPendingEditorRefusesCommit(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMatchImage)
	q := blankQuestion()
	got, err := e.Commit(template.Part{QuestionType: template.TypeMatchImage}, q, Draft{Text: "x"}, now)
	if !errors.Is(err, ErrEditorPending) {
		t.Fatalf("want ErrEditorPending, got %v", err)
	}
	if !reflect.DeepEqual(got, q) {
		t.Fatal("question mutated by pending editor")
	}
	if fe := e.Validate(template.Part{}, Draft{}); fe == nil {
		t.Fatal("pending editor validated a draft")
	}
}

func TestUnsupportedEditorRefusesCommit(t *testing.T) {
	e := NewDefaultRegistry().Select("hologram")
	_, err := e.Commit(template.Part{}, blankQuestion(), Draft{}, now)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("want ErrUnsupportedType, got %v", err)
	}
	if errors.Is(err, ErrEditorPending) {
		t.Fatal("unsupported must be distinct from pending")
	}
}

func TestTrueFalseCommit(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeTrueFalse)
	spec := template.Part{QuestionType: template.TypeTrueFalse, AllowedFields: template.AllowedFields{Options: true}}
	q := blankQuestion()
	q.CorrectAnswer = "false"

	got, err := e.Commit(spec, q, Draft{Answer: boolPtr(true)}, now)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	want := []exam.Option{
		{ID: exam.OptionID("q1", "A"), Label: "A", Text: "Đúng", IsCorrect: true},
		{ID: exam.OptionID("q1", "B"), Label: "B", Text: "Sai", IsCorrect: false},
	}
	if !reflect.DeepEqual(got.Options, want) {
		t.Fatalf("options = %+v", got.Options)
	}
	if got.CorrectAnswer != "A" || !got.IsCompleted || !got.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected question %+v", got)
	}

	got, err = e.Commit(spec, q, Draft{Answer: boolPtr(false)}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CorrectAnswer != "B" || got.Options[0].IsCorrect || !got.Options[1].IsCorrect {
		t.Fatalf("false answer not mirrored: %+v", got)
	}
}

func TestTrueFalseRequiresChoice(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeTrueFalse)
	q := blankQuestion()
	got, err := e.Commit(template.Part{}, q, Draft{}, now)
	var ve *exam.ValidationError
	if !errors.As(err, &ve) || ve.Fields["correct_answer"] == "" {
		t.Fatalf("want correct_answer error, got %v", err)
	}
	if got.IsCompleted {
		t.Fatal("question completed without a choice")
	}
}

func TestMCQTextRequiresAudio(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQText)
	spec := template.Part{
		QuestionType:  template.TypeMCQText,
		AllowedFields: template.AllowedFields{Audio: true, Options: true},
	}
	q := blankQuestion()
	d := Draft{Options: []exam.Option{
		{Text: "一", IsCorrect: true},
		{Text: "二"},
		{Text: "三"},
	}}
	got, err := e.Commit(spec, q, d, now)
	if !errors.Is(err, exam.ErrFieldValidationFailed) {
		t.Fatalf("want ErrFieldValidationFailed, got %v", err)
	}
	var ve *exam.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
	if _, ok := ve.Fields["audio_url"]; !ok {
		t.Fatalf("audio field not named: %v", ve.Fields)
	}
	if got.IsCompleted {
		t.Fatal("question marked completed")
	}

	d.AudioURL = "https://cdn.example/a.mp3"
	got, err = e.Commit(spec, q, d, now)
	if err != nil {
		t.Fatalf("commit with audio: %v", err)
	}
	if got.CorrectAnswer != "A" || got.AudioURL != d.AudioURL || !got.IsCompleted {
		t.Fatalf("unexpected %+v", got)
	}
	labels := []string{got.Options[0].Label, got.Options[1].Label, got.Options[2].Label}
	if !reflect.DeepEqual(labels, []string{"A", "B", "C"}) {
		t.Fatalf("labels = %v", labels)
	}
}

func TestMCQCorrectnessRule(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQText)
	spec := template.Part{AllowedFields: template.AllowedFields{Options: true}}
	cases := map[string][]exam.Option{
		"none correct": {{Text: "a"}, {Text: "b"}},
		"two correct":  {{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			fe := e.Validate(spec, Draft{Options: opts})
			if fe["correct_answer"] == "" {
				t.Fatalf("expected correctness error, got %v", fe)
			}
		})
	}
	if fe := e.Validate(spec, Draft{}); fe["options"] == "" {
		t.Fatalf("missing options not reported: %v", fe)
	}
}

func TestMCQRejectsDuplicateLabels(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQText)
	spec := template.Part{AllowedFields: template.AllowedFields{Options: true}}
	q := blankQuestion()

	// the blank second option would take the positional label B
	draft := Draft{Options: []exam.Option{{Label: "B", Text: "a", IsCorrect: true}, {Text: "b"}}}
	got, err := e.Commit(spec, q, draft, now)
	var verr *exam.ValidationError
	if !errors.As(err, &verr) || verr.Fields["options[1].label"] == "" {
		t.Fatalf("want duplicate label error, got %v", err)
	}
	if got.IsCompleted || got.Options != nil {
		t.Fatalf("question changed: %+v", got)
	}

	if fe := e.Validate(spec, Draft{Options: []exam.Option{{Label: " A ", Text: "a", IsCorrect: true}, {Label: "A", Text: "b"}}}); fe["options[1].label"] == "" {
		t.Fatalf("explicit duplicate not reported: %v", fe)
	}

	draft.Options[0].Label = "C"
	got, err = e.Commit(spec, q, draft, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Options[0].Label != "C" || got.Options[1].Label != "B" || got.Options[0].ID == got.Options[1].ID {
		t.Fatalf("options %+v", got.Options)
	}
	if got.CorrectAnswer != "C" {
		t.Fatalf("correct_answer = %q", got.CorrectAnswer)
	}
}

func TestMCQOptionsCount(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQText)
	spec := template.Part{OptionsCount: 4, AllowedFields: template.AllowedFields{Options: true}}
	fe := e.Validate(spec, Draft{Options: []exam.Option{{Text: "a", IsCorrect: true}, {Text: "b"}}})
	if fe["options"] == "" {
		t.Fatalf("options count mismatch not reported: %v", fe)
	}
}

func TestMCQImageRequiresOptionImages(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQImage)
	spec := template.Part{
		OptionsCount:  3,
		AllowedFields: template.AllowedFields{Images: true, Options: true},
	}
	d := Draft{Options: []exam.Option{
		{ImageURL: "img/a.png", IsCorrect: true},
		{ImageURL: "img/b.png"},
		{Text: "no picture"},
	}}
	fe := e.Validate(spec, d)
	if fe["options[2].image_url"] == "" {
		t.Fatalf("missing option image not reported: %v", fe)
	}
	d.Options[2].ImageURL = "img/c.png"
	got, err := e.Commit(spec, blankQuestion(), d, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Options[2].ImageURL != "img/c.png" || got.CorrectAnswer != "A" {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestMCQWithoutOptionListUsesKey(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeMCQText)
	spec := template.Part{AllowedFields: template.AllowedFields{Text: true}}
	if fe := e.Validate(spec, Draft{}); fe["correct_answer"] == "" {
		t.Fatalf("key not required: %v", fe)
	}
	got, err := e.Commit(spec, blankQuestion(), Draft{CorrectAnswer: " C ", Options: []exam.Option{{Text: "x"}}}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CorrectAnswer != "C" || got.Options != nil {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestEssayRules(t *testing.T) {
	e := NewDefaultRegistry().Select(template.TypeEssay)
	spec := template.Part{AllowedFields: template.AllowedFields{Text: true, Images: true}}

	fe := e.Validate(spec, Draft{Images: []string{"  "}})
	if fe["text"] == "" || fe["images"] == "" {
		t.Fatalf("expected text and images errors, got %v", fe)
	}

	got, err := e.Commit(spec, blankQuestion(), Draft{
		Text:          "请看图，写短文。",
		Images:        []string{"img/1.png"},
		CorrectAnswer: "这是一个示例答案。",
	}, now)
	if err != nil {
		t.Fatal(err)
	}
	if got.CorrectAnswer != "这是一个示例答案。" || !got.IsCompleted || len(got.Images) != 1 {
		t.Fatalf("unexpected %+v", got)
	}

	// text only when images are disabled
	spec.AllowedFields.Images = false
	if fe := e.Validate(spec, Draft{Text: "写一写"}); fe != nil {
		t.Fatalf("unexpected errors %v", fe)
	}
}

func TestCommitDropsForbiddenFields(t *testing.T) {
	spec := template.Part{AllowedFields: template.AllowedFields{Options: true}}
	d := Draft{
		Text:             "forbidden text",
		AudioURL:         "forbidden.mp3",
		Images:           []string{"forbidden.png"},
		Explanation:      "forbidden",
		ExplanationAudio: "forbidden.mp3",
		Answer:           boolPtr(true),
		Options: []exam.Option{
			{Text: "a", ImageURL: "x.png", AudioURL: "x.mp3", IsCorrect: true},
			{Text: "b"},
		},
	}
	r := NewDefaultRegistry()
	for _, tag := range []string{template.TypeTrueFalse, template.TypeMCQText, template.TypeMCQImage, template.TypeEssay} {
		got, err := r.Select(tag).Commit(spec, blankQuestion(), d, now)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if got.Text != "" || got.AudioURL != "" || got.Images != nil || got.Explanation != "" || got.ExplanationAudio != "" {
			t.Errorf("%s persisted a forbidden field: %+v", tag, got)
		}
		for _, o := range got.Options {
			if o.ImageURL != "" || o.AudioURL != "" {
				t.Errorf("%s persisted forbidden option media: %+v", tag, o)
			}
		}
	}
}

func TestRegisterOverrides(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(choiceEditor{tag: template.TypeMatchImage, optionImages: true})
	if r.Select(template.TypeMatchImage).Kind() != KindEditable {
		t.Fatal("registered editor did not replace pending variant")
	}
	r.Register(nil)
}

func TestLabel(t *testing.T) {
	for i, want := range map[int]string{0: "A", 2: "C", 25: "Z", 26: "AA", 27: "AB"} {
		if got := label(i); got != want {
			t.Errorf("label(%d) = %s, want %s", i, got, want)
		}
	}
}
