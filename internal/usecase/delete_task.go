package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	UUID string // Task to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct{}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks domain.TaskStore
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskStore) *DeleteTask {
	return &DeleteTask{
		tasks: tasks,
	}
}

// Execute deletes the task with the given uuid.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if err := uc.tasks.Delete(ctx, in.UUID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return &DeleteTaskOutput{}, nil
}
