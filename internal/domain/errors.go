package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrTaskAlreadyCreated = errors.New("task already created")
	ErrTaskNotCreated     = errors.New("task has no uuid")
	ErrEmptySearch        = errors.New("search template has no filterable fields")
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrUnsupportedField   = errors.New("unsupported field")
	ErrInvalidStamp       = errors.New("invalid timestamp")
	ErrUnknownFilter      = errors.New("unknown filter")
	ErrMissingUUIDs       = errors.New("no uuids given")
	ErrInvalidUUID        = errors.New("invalid uuid")
	ErrInvalidPage        = errors.New("page must be an unsigned integer")
	ErrRCFileNotFound     = errors.New("taskwarrior rc file not found")
	ErrConfigExists       = errors.New("config file already exists")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNoTasksInFile      = errors.New("no tasks found in file")
)

// PreconditionError reports an operation called on a task whose identity
// does not fit the operation (create on a stored task, done on a draft).
type PreconditionError struct {
	Err  error
	Op   string
	UUID string
}

func (e *PreconditionError) Error() string {
	if e.UUID != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.UUID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a taskwarrior invocation that exited non-zero.
// Stdout and Stderr are kept verbatim.
// Fields are ordered to minimize memory padding.
type ExecutionError struct {
	Stdout   string
	Stderr   string
	Args     []string
	ExitCode int
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "command [%s] failed with exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stdout != "" {
		fmt.Fprintf(&b, "\nstdout:\n%s", e.Stdout)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, "\nstderr:\n%s", e.Stderr)
	}
	return b.String()
}

// FormatError reports an export value that could not be decoded.
type FormatError struct {
	Err   error
	Field string
	Value string
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode export: %v", e.Err)
	}
	return fmt.Sprintf("decode field %q (value %s): %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a single-result query that did not return exactly one task.
type ProtocolError struct {
	Query string
	Count int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("query %s: expected exactly 1 task, got %d", e.Query, e.Count)
}

// UnsupportedFieldWarning is returned by the field codec for a field that
// cannot be put on the command line. It is logged, never fatal.
type UnsupportedFieldWarning struct {
	Value any
	Field string
}

func (w *UnsupportedFieldWarning) Error() string {
	return fmt.Sprintf("don't know how to format field %q (%T) for the command line", w.Field, w.Value)
}

func (w *UnsupportedFieldWarning) Unwrap() error {
	return ErrUnsupportedField
}
