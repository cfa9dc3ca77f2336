package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	UUID string // Task to show; empty shows the most recently added task
}

// ShowTaskOutput contains the result of showing a task.
type ShowTaskOutput struct {
	Task *domain.Task
}

// ShowTask is the use case for reading a single task.
type ShowTask struct {
	tasks domain.TaskStore
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(tasks domain.TaskStore) *ShowTask {
	return &ShowTask{
		tasks: tasks,
	}
}

// Execute reads the task.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	var (
		task *domain.Task
		err  error
	)
	if in.UUID == "" {
		task, err = uc.tasks.GetLatest(ctx)
	} else {
		task, err = uc.tasks.Get(ctx, in.UUID)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &ShowTaskOutput{Task: task}, nil
}
