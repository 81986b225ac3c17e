// Package session holds the in-memory authoring session for one test.
//
// A Controller is a small state machine:
//
//	loading -> ready -> editing(question) -> ready -> saving -> ready
//	loading -> error -> (retry) loading
//
// It is not safe for concurrent use; callers serialise access and keep at
// most one controller per test id open for write.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mind-engage/mindengage-mocktest/internal/completion"
	"github.com/mind-engage/mindengage-mocktest/internal/editor"
	"github.com/mind-engage/mindengage-mocktest/internal/exam"
	syncx "github.com/mind-engage/mindengage-mocktest/internal/sync"
	"github.com/mind-engage/mindengage-mocktest/internal/template"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEditing State = "editing"
	StateSaving  State = "saving"
	StateError   State = "error"
)

var ErrInvalidTransition = errors.New("invalid session transition")

// EventSink receives session outcomes; syncx.EventRepo satisfies it.
type EventSink interface {
	Append(ctx context.Context, e syncx.Event) error
}

type Deps struct {
	Templates template.Store
	Tests     exam.Store
	Editors   *editor.Registry // defaults to editor.NewDefaultRegistry()
	Events    EventSink        // optional
	Logger    *slog.Logger     // optional
	Now       func() time.Time // optional
}

// Editing describes the question currently open in an editor.
type Editing struct {
	QuestionID string
	Locator    exam.Locator
	Spec       template.Part
	Editor     editor.Editor
	Question   exam.Question
}

type Controller struct {
	testID    string
	templates template.Store
	tests     exam.Store
	editors   *editor.Registry
	events    EventSink
	logger    *slog.Logger
	now       func() time.Time

	state   State
	test    exam.Test
	tpl     *template.Template
	editing *Editing
	err     error
	dirty   bool
}

// New returns a controller in the loading state; call Load next.
func New(testID string, d Deps) *Controller {
	c := &Controller{
		testID:    testID,
		templates: d.Templates,
		tests:     d.Tests,
		editors:   d.Editors,
		events:    d.Events,
		logger:    d.Logger,
		now:       d.Now,
		state:     StateLoading,
	}
	if c.editors == nil {
		c.editors = editor.NewDefaultRegistry()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.logger = c.logger.With("test_id", testID)
	return c
}

func (c *Controller) TestID() string { return c.testID }
func (c *Controller) State() State   { return c.state }
func (c *Controller) Err() error     { return c.err }
func (c *Controller) Dirty() bool    { return c.dirty }

// Test returns the current tree. Callers must treat it as read-only.
func (c *Controller) Test() exam.Test { return c.test }

func (c *Controller) Template() (template.Template, bool) {
	if c.tpl == nil {
		return template.Template{}, false
	}
	return *c.tpl, true
}

func (c *Controller) Editing() (Editing, bool) {
	if c.editing == nil {
		return Editing{}, false
	}
	return *c.editing, true
}

// Summary reports whole-test completion of the in-memory tree.
func (c *Controller) Summary() completion.Summary {
	return completion.Summarize(c.test)
}

func (c *Controller) transitionErr(op string) error {
	c.logger.Debug("rejected transition", "op", op, "state", c.state)
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, op, c.state)
}

// Load fetches the test and, for a never-expanded test with a template,
// expands it. Any failure moves the controller to the error state.
func (c *Controller) Load(ctx context.Context) error {
	if c.state != StateLoading {
		return c.transitionErr("load")
	}
	t, err := c.tests.GetTest(ctx, c.testID)
	if err != nil {
		return c.fail(fmt.Errorf("load test: %w", err))
	}

	var tpl *template.Template
	if t.TemplateID != "" {
		got, err := c.templates.GetTemplate(ctx, t.TemplateID)
		if err != nil {
			return c.fail(fmt.Errorf("load template %s: %w", t.TemplateID, err))
		}
		tpl = &got
	}

	if len(t.Sections) == 0 && tpl != nil {
		sections, err := exam.Expand(*tpl, t.ID, c.now())
		if err != nil {
			return c.fail(err)
		}
		t.Sections = sections
		c.dirty = true
		c.logger.Info("test expanded from template", "template_id", tpl.ID, "sections", len(sections))
	}
	// stored trees may carry stale derived fields
	stored := t.Status
	t = completion.RecomputeTest(t)
	t.Status = keepReviewed(stored, t.Status)

	c.test, c.tpl, c.err = t, tpl, nil
	c.state = StateReady
	return nil
}

func (c *Controller) fail(err error) error {
	c.err = err
	c.state = StateError
	c.logger.Error("session load failed", "err", err)
	return err
}

// Retry is the only way out of the error state.
func (c *Controller) Retry(ctx context.Context) error {
	if c.state != StateError {
		return c.transitionErr("retry")
	}
	c.state = StateLoading
	return c.Load(ctx)
}

// Open starts editing the question with the given id.
func (c *Controller) Open(questionID string) (Editing, error) {
	if c.state != StateReady {
		return Editing{}, c.transitionErr("open")
	}
	loc, ok := c.test.Locate(questionID)
	if !ok {
		return Editing{}, fmt.Errorf("%w: %s", exam.ErrQuestionNotFound, questionID)
	}
	q, err := c.test.Question(loc)
	if err != nil {
		return Editing{}, err
	}
	spec := c.partSpec(loc)
	ed := c.editors.Select(spec.QuestionType)
	switch ed.Kind() {
	case editor.KindPending:
		c.logger.Info("editor pending", "question_type", spec.QuestionType, "question_id", questionID)
	case editor.KindUnsupported:
		c.logger.Warn("unsupported question type", "question_type", spec.QuestionType, "question_id", questionID)
	}

	c.editing = &Editing{QuestionID: questionID, Locator: loc, Spec: spec, Editor: ed, Question: q}
	c.state = StateEditing
	return *c.editing, nil
}

// partSpec resolves the template part a question belongs to. An unresolvable
// back-reference yields an empty spec, which selects the unsupported editor.
func (c *Controller) partSpec(loc exam.Locator) template.Part {
	if c.tpl == nil {
		return template.Part{}
	}
	p := c.test.Sections[loc.SectionIndex].Parts[loc.PartIndex]
	spec, _ := c.tpl.Part(p.TemplateSectionID, p.PartNo)
	return spec
}

// Cancel discards the open draft.
func (c *Controller) Cancel() error {
	if c.state != StateEditing {
		return c.transitionErr("cancel")
	}
	c.editing = nil
	c.state = StateReady
	return nil
}

// Commit validates d with the open editor. On success the question is
// replaced, its part and section statuses are recomputed and the session
// returns to ready. On failure nothing changes and the editor stays open.
func (c *Controller) Commit(d editor.Draft) (exam.Question, error) {
	if c.state != StateEditing || c.editing == nil {
		return exam.Question{}, c.transitionErr("commit")
	}
	ed := c.editing
	loc, ok := c.test.Locate(ed.QuestionID)
	if !ok {
		return exam.Question{}, fmt.Errorf("%w: %s", exam.ErrQuestionNotFound, ed.QuestionID)
	}
	q, err := c.test.Question(loc)
	if err != nil {
		return exam.Question{}, err
	}

	updated, err := ed.Editor.Commit(ed.Spec, q, d, c.now())
	if err != nil {
		c.logger.Debug("commit rejected", "question_id", q.ID, "err", err)
		return q, err
	}

	c.test = replaceQuestion(c.test, loc, updated)
	c.dirty = true
	c.editing = nil
	c.state = StateReady
	return updated, nil
}

// replaceQuestion swaps one question in and re-derives the statuses of its
// part and section. Untouched sections, parts and questions are shared.
func replaceQuestion(t exam.Test, loc exam.Locator, q exam.Question) exam.Test {
	sec := t.Sections[loc.SectionIndex]
	part := sec.Parts[loc.PartIndex]

	questions := append([]exam.Question(nil), part.Questions...)
	questions[loc.QuestionIndex] = q
	part.Questions = questions
	part = completion.RecomputePart(part)

	parts := append([]exam.Part(nil), sec.Parts...)
	parts[loc.PartIndex] = part
	sec.Parts = parts
	sec.CompletionStatus = completion.SectionStatus(parts)

	sections := append([]exam.Section(nil), t.Sections...)
	sections[loc.SectionIndex] = sec
	t.Sections = sections
	return t
}

// SetSectionAudio attaches the shared audio track of a listening section.
func (c *Controller) SetSectionAudio(sectionID, ref string) error {
	if c.state != StateReady {
		return c.transitionErr("set section audio")
	}
	for i, s := range c.test.Sections {
		if s.ID != sectionID {
			continue
		}
		if !s.IsListening {
			return &exam.ValidationError{Fields: exam.FieldErrors{"audio_url": "section has no shared audio"}}
		}
		sections := append([]exam.Section(nil), c.test.Sections...)
		s.AudioURL = ref
		sections[i] = s
		c.test.Sections = sections
		c.dirty = true
		return nil
	}
	return fmt.Errorf("%w: section %s", exam.ErrNotFound, sectionID)
}

// keepReviewed preserves a manual reviewed promotion while the test is still
// fully complete.
func keepReviewed(current, derived exam.TestStatus) exam.TestStatus {
	if current == exam.StatusReviewed && derived == exam.StatusCompleted {
		return exam.StatusReviewed
	}
	return derived
}

// Save hands the tree with its derived completion to the test store. On
// failure the session returns to ready with the tree untouched so the save
// can be retried.
func (c *Controller) Save(ctx context.Context) (completion.Summary, error) {
	if c.state != StateReady {
		return completion.Summary{}, c.transitionErr("save")
	}
	c.state = StateSaving
	defer func() { c.state = StateReady }()

	sum := completion.Summarize(c.test)
	status := keepReviewed(c.test.Status, sum.Status)
	req := exam.SaveRequest{Sections: c.test.Sections, Status: status, CompletionPercentage: sum.Percentage}
	if err := c.tests.SaveTest(ctx, c.testID, req); err != nil {
		c.logger.Error("save failed", "err", err)
		return sum, fmt.Errorf("%w: %w", exam.ErrPersistenceFailed, err)
	}

	c.test.Status = status
	c.test.CompletionPercentage = sum.Percentage
	c.test.UpdatedAt = c.now()
	c.dirty = false
	c.logger.Info("test saved", "completion_percentage", sum.Percentage, "status", status)

	if c.events != nil {
		ev, err := syncx.NewEvent(syncx.TypeTestSaved, c.testID, sum)
		if err == nil {
			err = c.events.Append(ctx, ev)
		}
		if err != nil {
			c.logger.Warn("event append failed", "err", err)
		}
	}
	sum.Status = status
	return sum, nil
}
