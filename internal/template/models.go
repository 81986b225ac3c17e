package template

import "strings"

// Question type tags understood by the editor registry.
const (
	TypeMCQImage   = "mcq_image"
	TypeMCQText    = "mcq_text"
	TypeTrueFalse  = "true_false"
	TypeEssay      = "essay"
	TypeMatchImage = "match_image"
	TypePair       = "pair"
	TypeFillBlank  = "fill_blank"
)

// InputTypeAudio marks a part whose stimulus is played to the candidate.
const InputTypeAudio = "audio"

// AllowedFields is the per-part capability set.
type AllowedFields struct {
	Text        bool `json:"text"`
	Audio       bool `json:"audio"`
	Images      bool `json:"images"`
	Options     bool `json:"options"`
	Explanation bool `json:"explanation"`
}

type Part struct {
	PartNo        int           `json:"part_no"`
	Title         string        `json:"title,omitempty"`
	QuestionType  string        `json:"question_type"`
	QuestionCount int           `json:"question_count"`
	OptionsCount  int           `json:"options_count,omitempty"`
	InputType     string        `json:"input_type,omitempty"` // audio, image, text
	Notes         string        `json:"notes,omitempty"`
	AllowedFields AllowedFields `json:"allowed_fields"`
}

type Section struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Order          int     `json:"order"`
	TimeLimitMin   int     `json:"time_limit_min,omitempty"`
	MaxScore       float64 `json:"max_score,omitempty"`
	TotalQuestions int     `json:"total_questions,omitempty"`
	Description    string  `json:"description,omitempty"`
	Parts          []Part  `json:"parts"`
}

// Structure is the ordered schema a test instance is expanded from.
type Structure struct {
	Sections []Section `json:"sections"`
}

// Template is immutable once published. Structure may be nil for drafts that
// were never given a schema; such templates cannot be expanded.
type Template struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	ExamType  string     `json:"exam_type,omitempty"` // hsk, tocfl, d4, hskk
	Level     string     `json:"level,omitempty"`
	Published bool       `json:"published"`
	Structure *Structure `json:"structure,omitempty"`
	CreatedAt int64      `json:"created_at,omitempty"`
}

// Section returns the template section with the given id.
func (t Template) Section(id string) (Section, bool) {
	if t.Structure == nil {
		return Section{}, false
	}
	for _, s := range t.Structure.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Part resolves a (section id, part number) back-reference.
func (t Template) Part(sectionID string, partNo int) (Part, bool) {
	s, ok := t.Section(sectionID)
	if !ok {
		return Part{}, false
	}
	for _, p := range s.Parts {
		if p.PartNo == partNo {
			return p, true
		}
	}
	return Part{}, false
}

var listeningKeywords = []string{"listening", "nghe", "听", "聽"}

// IsListening reports whether the section carries a shared audio track.
func (s Section) IsListening() bool {
	name := strings.ToLower(s.Name)
	for _, kw := range listeningKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	for _, p := range s.Parts {
		if strings.EqualFold(strings.TrimSpace(p.InputType), InputTypeAudio) {
			return true
		}
	}
	return false
}
