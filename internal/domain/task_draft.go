package domain

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskDraft is the writer-facing shape of a task: only attributes a caller
// may set. Store-derived values (id, urgency, mask, imask) and annotations
// have no field here.
// Fields are ordered to minimize memory padding.
type TaskDraft struct {
	Entry       *time.Time `yaml:"entry,omitempty"`
	Start       *time.Time `yaml:"start,omitempty"`
	End         *time.Time `yaml:"end,omitempty"`
	Due         *time.Time `yaml:"due,omitempty"`
	Scheduled   *time.Time `yaml:"scheduled,omitempty"`
	Wait        *time.Time `yaml:"wait,omitempty"`
	Until       *time.Time `yaml:"until,omitempty"`
	Description string     `yaml:"description"`
	Project     string     `yaml:"project,omitempty"`
	Priority    string     `yaml:"priority,omitempty"`
	Status      string     `yaml:"status,omitempty"`
	Recur       string     `yaml:"recur,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"`
	Depends     []string   `yaml:"depends,omitempty"`
}

// Validate checks the enum fields. Description is checked separately by
// callers that create tasks, since modify and search drafts may omit it.
func (d TaskDraft) Validate() error {
	if d.Priority != "" {
		if _, ok := ParsePriority(d.Priority); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
		}
	}
	if d.Status != "" && !Status(d.Status).IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
	}
	return nil
}

// ToTask converts the draft into a Task without uuid. Only set fields are
// added, in a fixed order.
func (d TaskDraft) ToTask() *Task {
	p := NewProperties()
	if d.Description != "" {
		p.Set(FieldDescription, d.Description)
	}
	if d.Project != "" {
		p.Set(FieldProject, d.Project)
	}
	if pr, ok := ParsePriority(d.Priority); ok {
		p.Set(FieldPriority, pr)
	}
	if d.Status != "" {
		p.Set(FieldStatus, Status(d.Status))
	}
	if d.Recur != "" {
		p.Set(FieldRecur, d.Recur)
	}
	if len(d.Tags) > 0 {
		p.Set(FieldTags, append([]string(nil), d.Tags...))
	}
	if len(d.Depends) > 0 {
		p.Set(FieldDepends, append([]string(nil), d.Depends...))
	}
	for _, f := range []struct {
		t    *time.Time
		name string
	}{
		{d.Entry, FieldEntry},
		{d.Start, FieldStart},
		{d.End, FieldEnd},
		{d.Due, FieldDue},
		{d.Scheduled, FieldScheduled},
		{d.Wait, FieldWait},
		{d.Until, FieldUntil},
	} {
		if f.t != nil {
			p.Set(f.name, f.t.UTC())
		}
	}
	return NewTask(p)
}

// IsEmpty reports whether no field is set.
func (d TaskDraft) IsEmpty() bool {
	return d.ToTask().Props.Len() == 0
}

// draftFile is the mapping form of an import file.
type draftFile struct {
	Tasks []TaskDraft `yaml:"tasks"`
}

// ParseTaskDrafts parses a YAML document holding one or more drafts.
// Both a top-level sequence and a mapping with a `tasks` key are accepted:
//
//	- description: Buy milk
//	  tags: [errand, home]
//	  due: 2024-05-01T18:00:00Z
//
//	tasks:
//	  - description: Buy milk
func ParseTaskDrafts(content []byte) ([]TaskDraft, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEmptyFile
	}

	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, ErrEmptyFile
	}

	var drafts []TaskDraft
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&drafts); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
	case yaml.MappingNode:
		var f draftFile
		if err := node.Content[0].Decode(&f); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		drafts = f.Tasks
	default:
		return nil, errors.New("expected a list of tasks or a mapping with a 'tasks' key")
	}

	if len(drafts) == 0 {
		return nil, ErrNoTasksInFile
	}
	for i, d := range drafts {
		if strings.TrimSpace(d.Description) == "" {
			return nil, fmt.Errorf("task %d: %w", i+1, ErrEmptyDescription)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return drafts, nil
}

// WriteTaskDrafts writes drafts as a YAML sequence.
func WriteTaskDrafts(w io.Writer, drafts []TaskDraft) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(drafts); err != nil {
		return err
	}
	return enc.Close()
}

// DraftFromTask converts a stored task into its writable fields.
func DraftFromTask(t *Task) TaskDraft {
	d := TaskDraft{
		Description: t.Description(),
		Project:     t.Project(),
		Priority:    string(t.Priority()),
		Status:      string(t.Status()),
		Recur:       t.Props.String(FieldRecur),
		Tags:        t.Tags(),
		Depends:     t.Depends(),
	}
	for _, f := range []struct {
		dst  **time.Time
		name string
	}{
		{&d.Entry, FieldEntry},
		{&d.Start, FieldStart},
		{&d.End, FieldEnd},
		{&d.Due, FieldDue},
		{&d.Scheduled, FieldScheduled},
		{&d.Wait, FieldWait},
		{&d.Until, FieldUntil},
	} {
		if v, ok := t.Time(f.name); ok {
			*f.dst = &v
		}
	}
	return d
}
