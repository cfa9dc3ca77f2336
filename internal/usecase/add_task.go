// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/twgate/internal/domain"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Draft     domain.TaskDraft // Attributes of the new task
	Completed bool             // Record the task as already done (task log)
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task *domain.Task // Stored task; nil when Completed is set
}

// AddTask is the use case for adding a task.
type AddTask struct {
	tasks domain.TaskStore
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(tasks domain.TaskStore) *AddTask {
	return &AddTask{
		tasks: tasks,
	}
}

// Execute validates the draft and hands it to the store.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if strings.TrimSpace(in.Draft.Description) == "" {
		return nil, domain.ErrEmptyDescription
	}
	if err := in.Draft.Validate(); err != nil {
		return nil, err
	}

	task := in.Draft.ToTask()

	// log always records a completed task, so a status attribute would conflict
	if in.Completed {
		task.Props.Delete(domain.FieldStatus)
		if err := uc.tasks.Log(ctx, task); err != nil {
			return nil, fmt.Errorf("log task: %w", err)
		}
		return &AddTaskOutput{}, nil
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("add task: %w", err)
	}
	return &AddTaskOutput{Task: created}, nil
}
