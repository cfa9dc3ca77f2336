package domain

import (
	"slices"
	"time"
)

// Properties is an insertion-ordered mapping from field name to typed value.
// The zero value is ready to use.
type Properties struct {
	values map[string]any
	keys   []string
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Set stores value under name. A new name goes to the end; an existing one keeps its position.
func (p *Properties) Set(name string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
}

// Get returns the value stored under name.
func (p *Properties) Get(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.values[name]
	return v, ok
}

// Has reports whether name is present.
func (p *Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Delete removes name. Missing names are ignored.
func (p *Properties) Delete(name string) {
	if p == nil {
		return
	}
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	if i := slices.Index(p.keys, name); i >= 0 {
		p.keys = slices.Delete(p.keys, i, i+1)
	}
}

// Keys returns the field names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Len returns the number of fields.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Clone returns a structural copy: slices held as values are copied too,
// so changes to the clone never reach the original.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	if p == nil {
		return c
	}
	for _, k := range p.keys {
		c.Set(k, cloneValue(p.values[k]))
	}
	return c
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return slices.Clone(val)
	case []Annotation:
		return slices.Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// String returns a string-typed field or "".
func (p *Properties) String(name string) string {
	v, _ := p.Get(name)
	switch s := v.(type) {
	case string:
		return s
	case Status:
		return string(s)
	case Priority:
		return string(s)
	default:
		return ""
	}
}

// Strings returns a []string-typed field or nil.
func (p *Properties) Strings(name string) []string {
	v, _ := p.Get(name)
	s, _ := v.([]string)
	return s
}

// Time returns a time.Time-typed field. ok is false when absent.
func (p *Properties) Time(name string) (time.Time, bool) {
	v, _ := p.Get(name)
	t, ok := v.(time.Time)
	return t, ok
}
