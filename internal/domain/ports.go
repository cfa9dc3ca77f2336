package domain

import "context"

// CommandRunner runs an external program to completion.
// A non-zero exit status is reported in ExecResult, not as an error;
// the error is reserved for failures to launch.
type CommandRunner interface {
	Run(ctx context.Context, cmd *ExecCommand) (*ExecResult, error)
}

// TaskStore is the typed view of taskwarrior.
// Every call queries or mutates taskwarrior directly; nothing is cached,
// so concurrent calls may observe each other's effects in any order.
type TaskStore interface {
	// Create adds a draft and returns the stored task.
	Create(ctx context.Context, task *Task) (*Task, error)

	// Log records a draft as already completed.
	Log(ctx context.Context, task *Task) error

	// Update merges the task's properties into the stored task with the
	// same uuid. Properties absent from task are left unchanged.
	Update(ctx context.Context, task *Task) (*Task, error)

	// Complete marks the task done.
	Complete(ctx context.Context, uuid string) error

	// Delete deletes the task.
	Delete(ctx context.Context, uuid string) error

	// Get returns the task with the given uuid.
	Get(ctx context.Context, uuid string) (*Task, error)

	// GetMultiple returns the tasks for the uuids that resolve.
	GetMultiple(ctx context.Context, uuids []string) ([]*Task, error)

	// GetLatest returns the most recently added task.
	GetLatest(ctx context.Context) (*Task, error)

	// GetActive returns pending tasks.
	GetActive(ctx context.Context) ([]*Task, error)

	// GetCompleted returns completed tasks.
	GetCompleted(ctx context.Context) ([]*Task, error)

	// GetAll returns active tasks followed by completed tasks.
	GetAll(ctx context.Context) ([]*Task, error)

	// GetBlocking returns tasks other tasks depend on.
	GetBlocking(ctx context.Context) ([]*Task, error)

	// GetBlocked returns tasks with unfinished dependencies.
	GetBlocked(ctx context.Context) ([]*Task, error)

	// GetReady returns actionable tasks.
	GetReady(ctx context.Context) ([]*Task, error)

	// GetUnblocked returns tasks without unfinished dependencies.
	GetUnblocked(ctx context.Context) ([]*Task, error)

	// SearchFor returns tasks matching the template's attributes.
	SearchFor(ctx context.Context, template *Task) ([]*Task, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (explicit file + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the default template to the global config path.
	InitGlobalConfig(force bool) error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
