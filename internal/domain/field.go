package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// EncodeField renders a single property as a `name:"value"` argument.
// Fields in ExcludedFromCLI and zero timestamps yield "" with no error.
// Unknown fields, or known fields holding an unexpected type, yield an
// *UnsupportedFieldWarning.
func EncodeField(name string, value any) (string, error) {
	if slices.Contains(ExcludedFromCLI, name) {
		return "", nil
	}

	unsupported := &UnsupportedFieldWarning{Field: name, Value: value}

	if IsTimestampField(name) {
		t, ok := value.(time.Time)
		if !ok {
			return "", unsupported
		}
		if t.IsZero() {
			return "", nil
		}
		if !IsStampable(t) {
			return "", unsupported
		}
		return quoted(name, FormatStamp(t)), nil
	}

	switch name {
	case FieldDescription, FieldProject, FieldRecur:
		s, ok := value.(string)
		if !ok {
			return "", unsupported
		}
		return quoted(name, s), nil
	case FieldStatus:
		switch s := value.(type) {
		case Status:
			return quoted(name, string(s)), nil
		case string:
			return quoted(name, s), nil
		}
	case FieldPriority:
		switch p := value.(type) {
		case Priority:
			return quoted(name, string(p)), nil
		case string:
			return quoted(name, p), nil
		}
	case FieldTags, FieldDepends:
		list, ok := value.([]string)
		if !ok {
			return "", unsupported
		}
		return quoted(name, strings.Join(list, ",")), nil
	}
	return "", unsupported
}

// cliEscaper escapes backslashes before quotes so every value has exactly
// one encoding.
var cliEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoted(name, value string) string {
	return name + `:"` + cliEscaper.Replace(value) + `"`
}

// DecodeTasks decodes the JSON array printed by `task export`.
// A single bad element fails the whole batch.
func DecodeTasks(data []byte) ([]*Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*Task{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &FormatError{Err: err}
	}

	tasks := make([]*Task, 0, len(raws))
	for i, raw := range raws {
		t, err := DecodeTask(raw)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// DecodeTask decodes a single export object. Key order is kept, uuid becomes
// the task identity, timestamps are parsed into time.Time.
func DecodeTask(data []byte) (*Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &FormatError{Err: fmt.Errorf("expected object, got %v", tok)}
	}

	task := NewTask(nil)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &FormatError{Err: err}
		}
		name, ok := tok.(string)
		if !ok {
			return nil, &FormatError{Err: fmt.Errorf("expected key, got %v", tok)}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &FormatError{Field: name, Err: err}
		}

		if name == FieldUUID {
			var uuid string
			if err := json.Unmarshal(raw, &uuid); err != nil {
				return nil, &FormatError{Field: name, Value: string(raw), Err: err}
			}
			task.UUID = uuid
			continue
		}

		v, err := decodeField(name, raw)
		if err != nil {
			return nil, &FormatError{Field: name, Value: string(raw), Err: err}
		}
		task.Props.Set(name, v)
	}

	if _, err := dec.Token(); err != nil {
		return nil, &FormatError{Err: err}
	}
	return task, nil
}

func decodeField(name string, raw json.RawMessage) (any, error) {
	if IsTimestampField(name) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return ParseStamp(s)
	}

	switch name {
	case FieldDescription, FieldProject, FieldRecur, FieldMask:
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	case FieldStatus:
		var s string
		err := json.Unmarshal(raw, &s)
		return Status(s), err
	case FieldPriority:
		var s string
		err := json.Unmarshal(raw, &s)
		return Priority(s), err
	case FieldTags:
		var tags []string
		err := json.Unmarshal(raw, &tags)
		return tags, err
	case FieldDepends:
		return decodeDepends(raw)
	case FieldAnnotations:
		return decodeAnnotations(raw)
	case FieldID:
		var id int
		err := json.Unmarshal(raw, &id)
		return id, err
	case FieldUrgency, FieldIMask:
		var f float64
		err := json.Unmarshal(raw, &f)
		return f, err
	}

	var v any
	err := json.Unmarshal(raw, &v)
	return v, err
}

// decodeDepends accepts the array form (taskwarrior 2.6+) and the older
// comma-separated string.
func decodeDepends(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("depends must be an array or a comma-separated string")
	}
	if s == "" {
		return []string{}, nil
	}
	return strings.Split(s, ","), nil
}

func decodeAnnotations(raw json.RawMessage) ([]Annotation, error) {
	var items []struct {
		Entry       string `json:"entry"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]Annotation, 0, len(items))
	for _, it := range items {
		entry, err := ParseStamp(it.Entry)
		if err != nil {
			return nil, fmt.Errorf("annotation entry: %w", err)
		}
		out = append(out, Annotation{Entry: entry, Description: it.Description})
	}
	return out, nil
}
