package testutil

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/runoshun/twgate/internal/domain"
)

// FakeTaskwarrior is an in-memory domain.CommandRunner that understands the
// subset of the taskwarrior command line the gateway produces: add, log,
// done, delete, modify and export with virtual tags, uuids and attribute
// filters.
// Fields are ordered to minimize memory padding.
type FakeTaskwarrior struct {
	Clock  Clock
	tasks  []*domain.Task
	latest string
	mu     sync.Mutex
}

// Ensure FakeTaskwarrior implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*FakeTaskwarrior)(nil)

// NewFakeTaskwarrior creates an empty fake whose timestamps come from clock.
func NewFakeTaskwarrior(clock Clock) *FakeTaskwarrior {
	if clock == nil {
		clock = &MockClock{NowTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	}
	return &FakeTaskwarrior{Clock: clock}
}

var subcommands = []string{"add", "log", "done", "delete", "modify", "export"}

// Run interprets cmd as a taskwarrior invocation.
func (f *FakeTaskwarrior) Run(_ context.Context, cmd *domain.ExecCommand) (*domain.ExecResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var args []string
	for _, a := range cmd.Args {
		if strings.HasPrefix(a, "rc:") || strings.HasPrefix(a, "rc.") {
			continue
		}
		args = append(args, a)
	}

	idx := slices.IndexFunc(args, func(a string) bool { return slices.Contains(subcommands, a) })
	if idx < 0 {
		return fail("Unknown command."), nil
	}
	before, sub, after := args[:idx], args[idx], args[idx+1:]
	now := f.Clock.Now().UTC().Truncate(time.Second)

	switch sub {
	case "add", "log":
		t := &domain.Task{UUID: uuid.NewString(), Props: domain.NewProperties()}
		status := domain.StatusPending
		if sub == "log" {
			status = domain.StatusCompleted
		}
		t.Props.Set(domain.FieldStatus, status)
		t.Props.Set(domain.FieldEntry, now)
		t.Props.Set(domain.FieldModified, now)
		if sub == "log" {
			t.Props.Set(domain.FieldEnd, now)
		}
		if err := applyMods(t, after); err != "" {
			return fail(err), nil
		}
		if t.Description() == "" {
			return fail("Additional text must be provided."), nil
		}
		f.tasks = append(f.tasks, t)
		f.latest = t.UUID
		return &domain.ExecResult{}, nil

	case "done", "delete":
		t := f.byUUID(after)
		if t == nil {
			return fail("No tasks specified."), nil
		}
		if sub == "done" {
			if t.Status() != domain.StatusPending {
				return fail("Task is not pending."), nil
			}
			t.Props.Set(domain.FieldStatus, domain.StatusCompleted)
			t.Props.Set(domain.FieldEnd, now)
		} else {
			t.Props.Set(domain.FieldStatus, domain.StatusDeleted)
			t.Props.Set(domain.FieldEnd, now)
		}
		t.Props.Set(domain.FieldModified, now)
		return &domain.ExecResult{}, nil

	case "modify":
		t := f.byUUID(before)
		if t == nil {
			return fail("No tasks specified."), nil
		}
		if err := applyMods(t, after); err != "" {
			return fail(err), nil
		}
		t.Props.Set(domain.FieldModified, now)
		return &domain.ExecResult{}, nil

	default:
		return f.export(append(before, after...), now)
	}
}

func fail(msg string) *domain.ExecResult {
	return &domain.ExecResult{ExitCode: 1, Stderr: msg + "\n"}
}

func (f *FakeTaskwarrior) byUUID(args []string) *domain.Task {
	for _, a := range args {
		for _, t := range f.tasks {
			if t.UUID == a {
				return t
			}
		}
	}
	return nil
}

// splitAttr splits `name:"value"` into name and unquoted value.
func splitAttr(tok string) (string, string, bool) {
	name, value, ok := strings.Cut(tok, ":")
	if !ok || name == "" {
		return "", "", false
	}
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	return name, cliUnescaper.Replace(value), true
}

var cliUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

func applyMods(t *domain.Task, mods []string) string {
	for _, m := range mods {
		name, value, ok := splitAttr(m)
		if !ok {
			return "Unrecognized argument '" + m + "'."
		}
		switch {
		case domain.IsTimestampField(name):
			ts, err := domain.ParseStamp(value)
			if err != nil {
				return "'" + value + "' is not a valid date."
			}
			t.Props.Set(name, ts)
		case name == domain.FieldTags || name == domain.FieldDepends:
			t.Props.Set(name, strings.Split(value, ","))
		case name == domain.FieldStatus:
			t.Props.Set(name, domain.Status(value))
		case name == domain.FieldPriority:
			t.Props.Set(name, domain.Priority(value))
		default:
			t.Props.Set(name, value)
		}
	}
	return ""
}

func (f *FakeTaskwarrior) pending(u string) bool {
	for _, t := range f.tasks {
		if t.UUID == u {
			return t.Status() == domain.StatusPending
		}
	}
	return false
}

func (f *FakeTaskwarrior) blocked(t *domain.Task) bool {
	return slices.ContainsFunc(t.Depends(), f.pending)
}

func (f *FakeTaskwarrior) blocking(t *domain.Task) bool {
	if t.Status() != domain.StatusPending {
		return false
	}
	for _, o := range f.tasks {
		if o.Status() == domain.StatusPending && slices.Contains(o.Depends(), t.UUID) {
			return true
		}
	}
	return false
}

func (f *FakeTaskwarrior) matches(t *domain.Task, tok string, now time.Time) bool {
	pending := t.Status() == domain.StatusPending
	switch tok {
	case "+PENDING":
		return pending
	case "+COMPLETED":
		return t.Status() == domain.StatusCompleted
	case "+LATEST":
		return t.UUID == f.latest
	case "+BLOCKED":
		return pending && f.blocked(t)
	case "+UNBLOCKED":
		return pending && !f.blocked(t)
	case "+BLOCKING":
		return f.blocking(t)
	case "+READY":
		scheduled, ok := t.Time(domain.FieldScheduled)
		return pending && !f.blocked(t) && (!ok || !scheduled.After(now))
	}

	name, value, ok := splitAttr(tok)
	if !ok {
		return t.UUID == tok
	}
	switch name {
	case domain.FieldTags:
		for _, tag := range strings.Split(value, ",") {
			if !slices.Contains(t.Tags(), tag) {
				return false
			}
		}
		return true
	case domain.FieldDescription, domain.FieldProject:
		return strings.Contains(t.Props.String(name), value)
	default:
		return t.Props.String(name) == value
	}
}

func (f *FakeTaskwarrior) export(filter []string, now time.Time) (*domain.ExecResult, error) {
	// Plain uuids are OR-ed together, everything else is AND-ed.
	var uuids, terms []string
	for _, tok := range filter {
		if _, _, isAttr := splitAttr(tok); !isAttr && !strings.HasPrefix(tok, "+") {
			uuids = append(uuids, tok)
		} else {
			terms = append(terms, tok)
		}
	}

	out := make([]*domain.Task, 0, len(f.tasks))
	id := 0
	for _, t := range f.tasks {
		cpy := &domain.Task{UUID: t.UUID, Props: domain.NewProperties()}
		if t.Status() == domain.StatusPending {
			id++
			cpy.Props.Set(domain.FieldID, id)
		} else {
			cpy.Props.Set(domain.FieldID, 0)
		}
		for _, k := range t.Props.Keys() {
			v, _ := t.Props.Get(k)
			cpy.Props.Set(k, v)
		}
		cpy.Props.Set(domain.FieldUrgency, 0.0)

		if len(uuids) > 0 && !slices.Contains(uuids, t.UUID) {
			continue
		}
		if !slices.ContainsFunc(terms, func(tok string) bool { return !f.matches(t, tok, now) }) {
			out = append(out, cpy)
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return &domain.ExecResult{Stdout: string(data) + "\n"}, nil
}

// Len returns the number of stored tasks, deleted ones included.
func (f *FakeTaskwarrior) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}
