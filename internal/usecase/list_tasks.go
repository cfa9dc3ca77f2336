package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/runoshun/twgate/internal/domain"
)

// Filter names accepted by ListTasks.
const (
	FilterActive    = "active"
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterBlocking  = "blocking"
	FilterBlocked   = "blocked"
	FilterReady     = "ready"
	FilterUnblocked = "unblocked"
	FilterLatest    = "latest"
	FilterSome      = "some"
)

// Filters lists every accepted filter name, default first.
var Filters = []string{
	FilterActive,
	FilterAll,
	FilterCompleted,
	FilterBlocking,
	FilterBlocked,
	FilterReady,
	FilterUnblocked,
	FilterLatest,
	FilterSome,
}

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter  string // One of Filters; empty means active
	UUIDs   string // Comma-separated uuids, required for filter some
	Page    string // Zero-based page number; empty returns everything
	PageSet bool   // Page was supplied, so an empty Page is invalid
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing tasks by named filter.
type ListTasks struct {
	tasks    domain.TaskStore
	pageSize int
}

// NewListTasks creates a new ListTasks use case.
// A pageSize below 1 falls back to domain.DefaultPageSize.
func NewListTasks(tasks domain.TaskStore, pageSize int) *ListTasks {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	return &ListTasks{
		tasks:    tasks,
		pageSize: pageSize,
	}
}

// Execute resolves the filter, queries the store and applies paging.
// Input errors are reported before the store is called.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	page, err := ParsePage(in.Page)
	if err != nil {
		return nil, err
	}
	if in.PageSet && page < 0 {
		return nil, fmt.Errorf("%w, got: %q", domain.ErrInvalidPage, in.Page)
	}

	filter := in.Filter
	if filter == "" {
		filter = FilterActive
	}

	var tasks []*domain.Task
	switch filter {
	case FilterActive:
		tasks, err = uc.tasks.GetActive(ctx)
	case FilterAll:
		tasks, err = uc.tasks.GetAll(ctx)
	case FilterCompleted:
		tasks, err = uc.tasks.GetCompleted(ctx)
	case FilterBlocking:
		tasks, err = uc.tasks.GetBlocking(ctx)
	case FilterBlocked:
		tasks, err = uc.tasks.GetBlocked(ctx)
	case FilterReady:
		tasks, err = uc.tasks.GetReady(ctx)
	case FilterUnblocked:
		tasks, err = uc.tasks.GetUnblocked(ctx)
	case FilterLatest:
		var latest *domain.Task
		latest, err = uc.tasks.GetLatest(ctx)
		if err == nil {
			tasks = []*domain.Task{latest}
		}
	case FilterSome:
		uuids, perr := ParseUUIDs(in.UUIDs)
		if perr != nil {
			return nil, perr
		}
		tasks, err = uc.tasks.GetMultiple(ctx, uuids)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFilter, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s tasks: %w", filter, err)
	}

	if page >= 0 && len(tasks) > uc.pageSize {
		tasks = paginate(tasks, page, uc.pageSize)
	}
	return &ListTasksOutput{Tasks: tasks}, nil
}

// ParsePage parses a zero-based page number. Empty input returns -1.
func ParsePage(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, nil
	}
	page, err := strconv.Atoi(s)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("%w, got: %s", domain.ErrInvalidPage, s)
	}
	return page, nil
}

// ParseUUIDs splits a comma-separated uuid list, trimming each entry.
// Every entry must be a valid uuid.
func ParseUUIDs(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := uuid.Parse(part); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidUUID, part)
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return nil, domain.ErrMissingUUIDs
	}
	return out, nil
}

// paginate returns the page-th slice of size items, clamped to the result.
// Pages past the end are empty.
func paginate(tasks []*domain.Task, page, size int) []*domain.Task {
	if page > len(tasks)/size {
		return tasks[:0]
	}
	start := min(page*size, len(tasks))
	end := min(start+size, len(tasks))
	return tasks[start:end]
}
