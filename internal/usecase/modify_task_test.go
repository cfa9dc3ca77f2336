package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifyTask_Execute_Success(t *testing.T) {
	store := testutil.NewMockTaskStore()
	store.Tasks["abc-123"] = testutil.NewTestTask("abc-123", "Spam", domain.StatusPending)
	uc := NewModifyTask(store)

	out, err := uc.Execute(context.Background(), ModifyTaskInput{
		UUID:    "abc-123",
		Changes: domain.TaskDraft{Project: "Home"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Spam", out.Task.Description())
	assert.Equal(t, "Home", out.Task.Project())

	require.Len(t, store.Updated, 1)
	assert.Equal(t, "abc-123", store.Updated[0].UUID)
	assert.Equal(t, []string{domain.FieldProject}, store.Updated[0].Props.Keys())
}

func TestModifyTask_Execute_NoChanges(t *testing.T) {
	store := testutil.NewMockTaskStore()
	uc := NewModifyTask(store)

	_, err := uc.Execute(context.Background(), ModifyTaskInput{UUID: "abc-123"})

	assert.Error(t, err)
	assert.Empty(t, store.Updated)
}

func TestModifyTask_Execute_InvalidPriority(t *testing.T) {
	store := testutil.NewMockTaskStore()
	uc := NewModifyTask(store)

	_, err := uc.Execute(context.Background(), ModifyTaskInput{
		UUID:    "abc-123",
		Changes: domain.TaskDraft{Priority: "x", Project: "Home"},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Empty(t, store.Updated)
}

func TestModifyTask_Execute_UnknownTask(t *testing.T) {
	store := testutil.NewMockTaskStore()
	uc := NewModifyTask(store)

	_, err := uc.Execute(context.Background(), ModifyTaskInput{
		UUID:    "missing",
		Changes: domain.TaskDraft{Project: "Home"},
	})

	var proto *domain.ProtocolError
	assert.ErrorAs(t, err, &proto)
}
