// Package domain contains core business entities and interfaces.
package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Taskwarrior attribute names.
const (
	FieldUUID        = "uuid"
	FieldID          = "id"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldProject     = "project"
	FieldRecur       = "recur"
	FieldTags        = "tags"
	FieldDepends     = "depends"
	FieldAnnotations = "annotations"
	FieldUrgency     = "urgency"
	FieldMask        = "mask"
	FieldIMask       = "imask"

	FieldEntry     = "entry"
	FieldModified  = "modified"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldDue       = "due"
	FieldUntil     = "until"
	FieldScheduled = "scheduled"
	FieldWait      = "wait"
)

// ExcludedFromCLI lists fields that are never written on the command line.
// They are store-derived or, for annotations, need their own subcommand.
var ExcludedFromCLI = []string{
	FieldAnnotations,
	FieldID,
	FieldIMask,
	FieldMask,
	FieldUrgency,
}

// Annotation is a timestamped note attached to a task.
// Fields are ordered to minimize memory padding.
type Annotation struct {
	Entry       time.Time `json:"entry"`
	Description string    `json:"description"`
}

// Task is a taskwarrior record.
// UUID is empty for drafts that have not been accepted by taskwarrior yet.
// The numeric id is only kept as a property: it changes between calls and
// must not be used to address a task.
type Task struct {
	Props *Properties
	UUID  string
}

// NewTask returns a draft with the given properties.
func NewTask(props *Properties) *Task {
	if props == nil {
		props = NewProperties()
	}
	return &Task{Props: props}
}

// IsDraft returns true if the task has not been stored yet.
func (t *Task) IsDraft() bool {
	return t.UUID == ""
}

// Description returns the description attribute.
func (t *Task) Description() string {
	return t.Props.String(FieldDescription)
}

// Status returns the status attribute.
func (t *Task) Status() Status {
	return Status(t.Props.String(FieldStatus))
}

// Priority returns the priority attribute.
func (t *Task) Priority() Priority {
	return Priority(t.Props.String(FieldPriority))
}

// Project returns the project attribute.
func (t *Task) Project() string {
	return t.Props.String(FieldProject)
}

// Tags returns the tag set.
func (t *Task) Tags() []string {
	return t.Props.Strings(FieldTags)
}

// Depends returns the uuids this task depends on.
func (t *Task) Depends() []string {
	return t.Props.Strings(FieldDepends)
}

// Annotations returns the annotations. They are read-only from this side.
func (t *Task) Annotations() []Annotation {
	v, _ := t.Props.Get(FieldAnnotations)
	a, _ := v.([]Annotation)
	return a
}

// Time returns a timestamp attribute.
func (t *Task) Time(field string) (time.Time, bool) {
	return t.Props.Time(field)
}

// ID returns the short-lived working-set id, or 0.
func (t *Task) ID() int {
	v, _ := t.Props.Get(FieldID)
	id, _ := v.(int)
	return id
}

// Urgency returns the store-computed urgency.
func (t *Task) Urgency() float64 {
	v, _ := t.Props.Get(FieldUrgency)
	u, _ := v.(float64)
	return u
}

// Mask returns the recurrence mask of a recurring parent.
func (t *Task) Mask() string {
	return t.Props.String(FieldMask)
}

// IMask returns the recurrence index of a recurring child.
func (t *Task) IMask() float64 {
	v, _ := t.Props.Get(FieldIMask)
	m, _ := v.(float64)
	return m
}

// FormatForCLI converts the task into `name:value` arguments for taskwarrior.
// The receiver is left untouched. Fields that cannot be encoded are skipped
// and reported in warnings.
func (t *Task) FormatForCLI() (args []string, warnings []error) {
	cpy := t.Props.Clone()
	for _, f := range ExcludedFromCLI {
		cpy.Delete(f)
	}

	args = make([]string, 0, cpy.Len())
	for _, name := range cpy.Keys() {
		v, _ := cpy.Get(name)
		token, err := EncodeField(name, v)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		if token != "" {
			args = append(args, token)
		}
	}
	return args, warnings
}

// MarshalJSON renders the task in taskwarrior's export schema, uuid first.
func (t *Task) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(name string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(data)
		return nil
	}

	if t.UUID != "" {
		if err := write(FieldUUID, t.UUID); err != nil {
			return nil, err
		}
	}
	for _, name := range t.Props.Keys() {
		v, _ := t.Props.Get(name)
		if err := write(name, exportValue(v)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// exportValue maps typed values back to their export representation.
func exportValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return FormatStamp(val)
	case []Annotation:
		out := make([]map[string]string, 0, len(val))
		for _, a := range val {
			out = append(out, map[string]string{
				FieldEntry:       FormatStamp(a.Entry),
				FieldDescription: a.Description,
			})
		}
		return out
	default:
		return v
	}
}
