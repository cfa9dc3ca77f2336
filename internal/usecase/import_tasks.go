package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/twgate/internal/domain"
)

// ImportTasksInput contains the parameters for importing tasks from YAML.
type ImportTasksInput struct {
	Content []byte // YAML document with one or more drafts
	DryRun  bool   // If true, parse and validate without creating tasks
}

// ImportTasksOutput contains the result of importing tasks.
type ImportTasksOutput struct {
	Drafts  []domain.TaskDraft // Parsed drafts, in file order
	Created []*domain.Task     // Stored tasks; empty in dry-run mode
}

// ImportTasks is the use case for creating tasks from a YAML file.
type ImportTasks struct {
	tasks domain.TaskStore
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(tasks domain.TaskStore) *ImportTasks {
	return &ImportTasks{
		tasks: tasks,
	}
}

// Execute creates the drafts one by one in file order. The first failure
// stops the import; tasks created before it are reported in the output.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{Drafts: drafts}
	if in.DryRun {
		return out, nil
	}

	out.Created = make([]*domain.Task, 0, len(drafts))
	for i, d := range drafts {
		task, err := uc.tasks.Create(ctx, d.ToTask())
		if err != nil {
			return out, fmt.Errorf("task %d: %w", i+1, err)
		}
		out.Created = append(out.Created, task)
	}
	return out, nil
}
