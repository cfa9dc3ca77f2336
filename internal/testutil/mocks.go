// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/twgate/internal/domain"
)

// Clock supplies the current time to fakes.
type Clock interface {
	Now() time.Time
}

// MockClock is a fixed Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockRunner is a test double for domain.CommandRunner.
// Results are returned in order; once exhausted, the last one repeats.
// With no results configured it answers with an empty export.
// Fields are ordered to minimize memory padding.
type MockRunner struct {
	Err     error
	Results []*domain.ExecResult
	Calls   []*domain.ExecCommand
	mu      sync.Mutex
	next    int
}

// Ensure MockRunner implements domain.CommandRunner interface.
var _ domain.CommandRunner = (*MockRunner)(nil)

// NewMockRunner creates a MockRunner that answers with the given stdouts, exit code 0.
func NewMockRunner(stdouts ...string) *MockRunner {
	m := &MockRunner{}
	for _, out := range stdouts {
		m.Results = append(m.Results, &domain.ExecResult{Stdout: out})
	}
	return m
}

// Run records the command and returns the next configured result.
func (m *MockRunner) Run(_ context.Context, cmd *domain.ExecCommand) (*domain.ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, cmd)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Results) == 0 {
		return &domain.ExecResult{Stdout: "[\n]\n"}, nil
	}
	res := m.Results[min(m.next, len(m.Results)-1)]
	m.next++
	return res, nil
}

// Argvs returns the argument vectors of all recorded calls.
func (m *MockRunner) Argvs() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		out = append(out, c.Argv())
	}
	return out
}

// MockTaskStore is a test double for domain.TaskStore.
// Fields are ordered to minimize memory padding.
type MockTaskStore struct {
	Err            error
	Tasks          map[string]*domain.Task
	Latest         *domain.Task
	Active         []*domain.Task
	Completed      []*domain.Task
	Blocking       []*domain.Task
	Blocked        []*domain.Task
	Ready          []*domain.Task
	Unblocked      []*domain.Task
	SearchResult   []*domain.Task
	Created        []*domain.Task
	Logged         []*domain.Task
	Updated        []*domain.Task
	Searched       []*domain.Task
	CompletedUUIDs []string
	DeletedUUIDs   []string
	RequestedUUIDs []string
	nextN          int
}

// Ensure MockTaskStore implements domain.TaskStore interface.
var _ domain.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a MockTaskStore with initialized maps.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[string]*domain.Task),
		nextN: 1,
	}
}

// MockUUID returns the uuid the mock assigns to its n-th created task.
func MockUUID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

// Create stores a copy of the draft under a fresh uuid.
func (m *MockTaskStore) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !task.IsDraft() {
		return nil, &domain.PreconditionError{Op: "add", UUID: task.UUID, Err: domain.ErrTaskAlreadyCreated}
	}
	m.Created = append(m.Created, task)
	stored := &domain.Task{UUID: MockUUID(m.nextN), Props: task.Props.Clone()}
	m.nextN++
	m.Tasks[stored.UUID] = stored
	m.Latest = stored
	return stored, nil
}

// Log records the draft.
func (m *MockTaskStore) Log(_ context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if !task.IsDraft() {
		return &domain.PreconditionError{Op: "log", UUID: task.UUID, Err: domain.ErrTaskAlreadyCreated}
	}
	m.Logged = append(m.Logged, task)
	return nil
}

// Update merges the task's properties into the stored one.
func (m *MockTaskStore) Update(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if task.UUID == "" {
		return nil, &domain.PreconditionError{Op: "modify", Err: domain.ErrTaskNotCreated}
	}
	m.Updated = append(m.Updated, task)
	stored, ok := m.Tasks[task.UUID]
	if !ok {
		return nil, &domain.ProtocolError{Query: task.UUID}
	}
	for _, k := range task.Props.Keys() {
		v, _ := task.Props.Get(k)
		stored.Props.Set(k, v)
	}
	return stored, nil
}

// Complete records the uuid.
func (m *MockTaskStore) Complete(_ context.Context, uuid string) error {
	if m.Err != nil {
		return m.Err
	}
	if uuid == "" {
		return &domain.PreconditionError{Op: "done", Err: domain.ErrTaskNotCreated}
	}
	m.CompletedUUIDs = append(m.CompletedUUIDs, uuid)
	return nil
}

// Delete records the uuid.
func (m *MockTaskStore) Delete(_ context.Context, uuid string) error {
	if m.Err != nil {
		return m.Err
	}
	if uuid == "" {
		return &domain.PreconditionError{Op: "delete", Err: domain.ErrTaskNotCreated}
	}
	m.DeletedUUIDs = append(m.DeletedUUIDs, uuid)
	return nil
}

// Get returns the stored task or a ProtocolError.
func (m *MockTaskStore) Get(_ context.Context, uuid string) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Tasks[uuid]
	if !ok {
		return nil, &domain.ProtocolError{Query: uuid}
	}
	return t, nil
}

// GetMultiple returns the stored tasks that exist, in request order.
func (m *MockTaskStore) GetMultiple(_ context.Context, uuids []string) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.RequestedUUIDs = append(m.RequestedUUIDs, uuids...)
	out := []*domain.Task{}
	for _, u := range uuids {
		if t, ok := m.Tasks[u]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// GetLatest returns Latest or a ProtocolError when unset.
func (m *MockTaskStore) GetLatest(_ context.Context) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Latest == nil {
		return nil, &domain.ProtocolError{Query: "+LATEST"}
	}
	return m.Latest, nil
}

func (m *MockTaskStore) list(tasks []*domain.Task) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return tasks, nil
}

// GetActive returns Active.
func (m *MockTaskStore) GetActive(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Active)
}

// GetCompleted returns Completed.
func (m *MockTaskStore) GetCompleted(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Completed)
}

// GetAll returns Active followed by Completed.
func (m *MockTaskStore) GetAll(_ context.Context) ([]*domain.Task, error) {
	all := append(append([]*domain.Task{}, m.Active...), m.Completed...)
	return m.list(all)
}

// GetBlocking returns Blocking.
func (m *MockTaskStore) GetBlocking(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Blocking)
}

// GetBlocked returns Blocked.
func (m *MockTaskStore) GetBlocked(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Blocked)
}

// GetReady returns Ready.
func (m *MockTaskStore) GetReady(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Ready)
}

// GetUnblocked returns Unblocked.
func (m *MockTaskStore) GetUnblocked(_ context.Context) ([]*domain.Task, error) {
	return m.list(m.Unblocked)
}

// SearchFor records the template and returns SearchResult.
func (m *MockTaskStore) SearchFor(_ context.Context, template *domain.Task) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Searched = append(m.Searched, template)
	return m.SearchResult, nil
}

// NewTestTask builds a stored task with a description and status.
func NewTestTask(uuid, description string, status domain.Status) *domain.Task {
	p := domain.NewProperties()
	p.Set(domain.FieldDescription, description)
	p.Set(domain.FieldStatus, status)
	return &domain.Task{UUID: uuid, Props: p}
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	Info       domain.ConfigInfo
	InitCalled bool
	InitForce  bool
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GlobalConfigInfo returns Info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.Info
}

// InitGlobalConfig records the call and returns InitErr.
func (m *MockConfigManager) InitGlobalConfig(force bool) error {
	m.InitCalled = true
	m.InitForce = force
	if m.InitErr != nil {
		return m.InitErr
	}
	m.Info.Exists = true
	return nil
}
