package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// SearchTasksInput contains the parameters for searching tasks.
type SearchTasksInput struct {
	Template domain.TaskDraft // Attributes every result must match
}

// SearchTasksOutput contains the result of searching tasks.
type SearchTasksOutput struct {
	Tasks []*domain.Task
}

// SearchTasks is the use case for attribute search.
type SearchTasks struct {
	tasks domain.TaskStore
}

// NewSearchTasks creates a new SearchTasks use case.
func NewSearchTasks(tasks domain.TaskStore) *SearchTasks {
	return &SearchTasks{
		tasks: tasks,
	}
}

// Execute runs the search.
func (uc *SearchTasks) Execute(ctx context.Context, in SearchTasksInput) (*SearchTasksOutput, error) {
	if err := in.Template.Validate(); err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.SearchFor(ctx, in.Template.ToTask())
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return &SearchTasksOutput{Tasks: tasks}, nil
}
