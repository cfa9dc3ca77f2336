package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	UUID string // Task to mark done
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct{}

// CompleteTask is the use case for marking a task done.
type CompleteTask struct {
	tasks domain.TaskStore
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskStore) *CompleteTask {
	return &CompleteTask{
		tasks: tasks,
	}
}

// Execute marks the task done.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	if err := uc.tasks.Complete(ctx, in.UUID); err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return &CompleteTaskOutput{}, nil
}
