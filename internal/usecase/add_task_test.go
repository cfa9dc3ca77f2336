package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTask_Execute_Success(t *testing.T) {
	// Setup
	store := testutil.NewMockTaskStore()
	uc := NewAddTask(store)

	// Execute
	out, err := uc.Execute(context.Background(), AddTaskInput{
		Draft: domain.TaskDraft{
			Description: "Buy milk",
			Tags:        []string{"errand", "home"},
			Priority:    "h",
		},
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out.Task)
	assert.Equal(t, testutil.MockUUID(1), out.Task.UUID)
	assert.Equal(t, "Buy milk", out.Task.Description())
	assert.Equal(t, domain.PriorityHigh, out.Task.Priority())

	require.Len(t, store.Created, 1)
	assert.True(t, store.Created[0].IsDraft())
	assert.Empty(t, store.Logged)
}

func TestAddTask_Execute_Completed(t *testing.T) {
	store := testutil.NewMockTaskStore()
	uc := NewAddTask(store)

	out, err := uc.Execute(context.Background(), AddTaskInput{
		Draft:     domain.TaskDraft{Description: "Already done", Status: "pending"},
		Completed: true,
	})

	require.NoError(t, err)
	assert.Nil(t, out.Task)
	assert.Empty(t, store.Created)
	require.Len(t, store.Logged, 1)
	assert.Equal(t, "Already done", store.Logged[0].Description())
	assert.False(t, store.Logged[0].Props.Has(domain.FieldStatus))
}

func TestAddTask_Execute_Validation(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		draft   domain.TaskDraft
	}{
		{domain.ErrEmptyDescription, "empty description", domain.TaskDraft{}},
		{domain.ErrEmptyDescription, "blank description", domain.TaskDraft{Description: "  "}},
		{domain.ErrInvalidPriority, "bad priority", domain.TaskDraft{Description: "x", Priority: "urgent"}},
		{domain.ErrInvalidStatus, "bad status", domain.TaskDraft{Description: "x", Status: "doing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMockTaskStore()
			uc := NewAddTask(store)

			_, err := uc.Execute(context.Background(), AddTaskInput{Draft: tt.draft})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.Created)
		})
	}
}

func TestAddTask_Execute_StoreError(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Err = &domain.ExecutionError{ExitCode: 1, Stderr: "boom"}
	uc := NewAddTask(store)

	_, err := uc.Execute(context.Background(), AddTaskInput{Draft: domain.TaskDraft{Description: "x"}})

	var execErr *domain.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "add task")
}
