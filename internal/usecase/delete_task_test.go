package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTask_Execute_Success(t *testing.T) {
	// Setup
	store := testutil.NewMockTaskStore()
	uc := NewDeleteTask(store)

	// Execute
	out, err := uc.Execute(context.Background(), DeleteTaskInput{UUID: "abc-123"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{"abc-123"}, store.DeletedUUIDs)
}

func TestDeleteTask_Execute_NoUUID(t *testing.T) {
	store := testutil.NewMockTaskStore()
	uc := NewDeleteTask(store)

	_, err := uc.Execute(context.Background(), DeleteTaskInput{})

	assert.ErrorIs(t, err, domain.ErrTaskNotCreated)
	assert.Empty(t, store.DeletedUUIDs)
}

func TestDeleteTask_Execute_StoreError(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Err = assert.AnError
	uc := NewDeleteTask(store)

	_, err := uc.Execute(context.Background(), DeleteTaskInput{UUID: "abc-123"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "delete task")
}
