package exam

import "time"

// CompletionStatus is the tri-state aggregate derived for parts and sections.
type CompletionStatus string

const (
	NotStarted CompletionStatus = "not_started"
	InProgress CompletionStatus = "in_progress"
	Completed  CompletionStatus = "completed"
)

// TestStatus is the whole-test record status.
type TestStatus string

const (
	StatusDraft      TestStatus = "draft"
	StatusIncomplete TestStatus = "incomplete"
	StatusCompleted  TestStatus = "completed"
	StatusReviewed   TestStatus = "reviewed" // manual promotion only
)

type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"` // A, B, C, ...
	Text      string `json:"text,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	AudioURL  string `json:"audio_url,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID               string    `json:"id"`
	PartID           string    `json:"part_id"`
	OrderNo          int       `json:"order_no"`
	Text             string    `json:"text,omitempty"`
	AudioURL         string    `json:"audio_url,omitempty"`
	Images           []string  `json:"images,omitempty"`
	Options          []Option  `json:"options,omitempty"`
	Explanation      string    `json:"explanation,omitempty"`
	ExplanationAudio string    `json:"explanation_audio,omitempty"`
	CorrectAnswer    string    `json:"correct_answer"`
	IsCompleted      bool      `json:"is_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Part references its template part by (TemplateSectionID, PartNo).
type Part struct {
	ID                string           `json:"id"`
	SectionID         string           `json:"section_id"`
	TemplateSectionID string           `json:"template_section_id"`
	PartNo            int              `json:"part_no"`
	Questions         []Question       `json:"questions"`
	CompletionStatus  CompletionStatus `json:"completion_status"`
}

type Section struct {
	ID                string           `json:"id"`
	TestID            string           `json:"test_id"`
	TemplateSectionID string           `json:"template_section_id"`
	Parts             []Part           `json:"parts"`
	CompletionStatus  CompletionStatus `json:"completion_status"`
	IsListening       bool             `json:"is_listening,omitempty"`
	AudioURL          string           `json:"audio_url,omitempty"` // shared track for listening sections
}

// Test is a concrete instance. TemplateID is empty for manually authored
// tests; Sections is empty until the test is expanded.
type Test struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	TemplateID           string     `json:"template_id,omitempty"`
	Sections             []Section  `json:"sections"`
	Status               TestStatus `json:"status"`
	CompletionPercentage int        `json:"completion_percentage"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Locator addresses one question inside a test tree.
type Locator struct {
	SectionIndex  int
	PartIndex     int
	QuestionIndex int
}

// Locate finds a question by identity.
func (t Test) Locate(questionID string) (Locator, bool) {
	for si, s := range t.Sections {
		for pi, p := range s.Parts {
			for qi, q := range p.Questions {
				if q.ID == questionID {
					return Locator{SectionIndex: si, PartIndex: pi, QuestionIndex: qi}, true
				}
			}
		}
	}
	return Locator{}, false
}

// Question returns the question at loc, or ErrQuestionNotFound when loc falls
// outside the tree.
func (t Test) Question(loc Locator) (Question, error) {
	if loc.SectionIndex < 0 || loc.SectionIndex >= len(t.Sections) {
		return Question{}, ErrQuestionNotFound
	}
	s := t.Sections[loc.SectionIndex]
	if loc.PartIndex < 0 || loc.PartIndex >= len(s.Parts) {
		return Question{}, ErrQuestionNotFound
	}
	p := s.Parts[loc.PartIndex]
	if loc.QuestionIndex < 0 || loc.QuestionIndex >= len(p.Questions) {
		return Question{}, ErrQuestionNotFound
	}
	return p.Questions[loc.QuestionIndex], nil
}
