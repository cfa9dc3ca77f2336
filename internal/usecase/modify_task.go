package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// ModifyTaskInput contains the parameters for modifying a task.
type ModifyTaskInput struct {
	UUID    string           // Task to modify
	Changes domain.TaskDraft // Only the set fields are sent
}

// ModifyTaskOutput contains the result of modifying a task.
type ModifyTaskOutput struct {
	Task *domain.Task // Task as stored after the change
}

// ModifyTask is the use case for changing task attributes.
type ModifyTask struct {
	tasks domain.TaskStore
}

// NewModifyTask creates a new ModifyTask use case.
func NewModifyTask(tasks domain.TaskStore) *ModifyTask {
	return &ModifyTask{
		tasks: tasks,
	}
}

// Execute merges the changes into the stored task.
func (uc *ModifyTask) Execute(ctx context.Context, in ModifyTaskInput) (*ModifyTaskOutput, error) {
	if in.Changes.IsEmpty() {
		return nil, errors.New("no changes specified")
	}
	if err := in.Changes.Validate(); err != nil {
		return nil, err
	}

	task := in.Changes.ToTask()
	task.UUID = in.UUID

	updated, err := uc.tasks.Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("modify task: %w", err)
	}
	return &ModifyTaskOutput{Task: updated}, nil
}
