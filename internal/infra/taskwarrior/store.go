// Package taskwarrior implements domain.TaskStore on top of the `task` CLI.
package taskwarrior

import (
	"context"
	"log/slog"
	"strings"

	"github.com/runoshun/twgate/internal/domain"
)

// Ensure Store implements domain.TaskStore interface.
var _ domain.TaskStore = (*Store)(nil)

// Overrides are prepended to every invocation so taskwarrior never prompts
// and always prints JSON arrays.
var Overrides = []string{
	"rc.json.array=TRUE",
	"rc.verbose=nothing",
	"rc.confirmation=no",
	"rc.dependency.confirmation=no",
	"rc.recurrence.confirmation=no",
}

// Export filters.
const (
	filterPending   = "+PENDING"
	filterCompleted = "+COMPLETED"
	filterBlocking  = "+BLOCKING"
	filterBlocked   = "+BLOCKED"
	filterReady     = "+READY"
	filterUnblocked = "+UNBLOCKED"
	filterLatest    = "+LATEST"
)

// Subcommands.
const (
	cmdAdd    = "add"
	cmdLog    = "log"
	cmdDone   = "done"
	cmdDelete = "delete"
	cmdModify = "modify"
	cmdExport = "export"
)

// Store talks to taskwarrior through a domain.CommandRunner.
// It holds only immutable configuration and is safe for concurrent use.
// Fields are ordered to minimize memory padding.
type Store struct {
	runner  domain.CommandRunner
	logger  *slog.Logger
	program string
	rc      string
}

// Option configures a Store.
type Option func(*Store)

// WithProgram sets the taskwarrior executable.
func WithProgram(program string) Option {
	return func(s *Store) {
		if program != "" {
			s.program = program
		}
	}
}

// WithRC passes rc:<path> on every invocation.
func WithRC(path string) Option {
	return func(s *Store) {
		s.rc = path
	}
}

// WithLogger sets the logger for invocations and codec warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store backed by runner.
func New(runner domain.CommandRunner, opts ...Option) *Store {
	s := &Store{
		runner:  runner,
		program: domain.DefaultProgram,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// command assembles the full invocation: program, rc file, overrides, args.
func (s *Store) command(args ...string) *domain.ExecCommand {
	full := make([]string, 0, len(Overrides)+len(args)+1)
	if s.rc != "" {
		full = append(full, "rc:"+s.rc)
	}
	full = append(full, Overrides...)
	full = append(full, args...)
	return domain.NewCommand(s.program, full, "")
}

// execute runs taskwarrior and returns stdout. A non-zero exit becomes an
// *domain.ExecutionError and the output is not looked at further.
func (s *Store) execute(ctx context.Context, args ...string) (string, error) {
	cmd := s.command(args...)
	s.logger.Debug("run taskwarrior", "argv", strings.Join(cmd.Argv(), " "))

	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", &domain.ExecutionError{
			Args:     cmd.Argv(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return res.Stdout, nil
}

// formatForCLI encodes task and logs the fields that were skipped.
func (s *Store) formatForCLI(task *domain.Task) []string {
	args, warnings := task.FormatForCLI()
	for _, w := range warnings {
		s.logger.Warn("skipping field on command line", "error", w)
	}
	return args
}

// export runs `task export <filter...>` and decodes the result.
func (s *Store) export(ctx context.Context, filter ...string) ([]*domain.Task, error) {
	out, err := s.execute(ctx, append([]string{cmdExport}, filter...)...)
	if err != nil {
		return nil, err
	}
	return domain.DecodeTasks([]byte(out))
}

// exportOne runs an export that must match exactly one task.
func (s *Store) exportOne(ctx context.Context, filter string) (*domain.Task, error) {
	tasks, err := s.export(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(tasks) != 1 {
		return nil, &domain.ProtocolError{Query: filter, Count: len(tasks)}
	}
	return tasks[0], nil
}

func checkNotCreated(op string, task *domain.Task) error {
	if !task.IsDraft() {
		return &domain.PreconditionError{Op: op, UUID: task.UUID, Err: domain.ErrTaskAlreadyCreated}
	}
	return nil
}

func checkUUID(op, uuid string) error {
	if uuid == "" {
		return &domain.PreconditionError{Op: op, Err: domain.ErrTaskNotCreated}
	}
	return nil
}

// Create adds the draft and re-reads it through +LATEST.
func (s *Store) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := checkNotCreated(cmdAdd, task); err != nil {
		return nil, err
	}
	if _, err := s.execute(ctx, append([]string{cmdAdd}, s.formatForCLI(task)...)...); err != nil {
		return nil, err
	}
	return s.GetLatest(ctx)
}

// Log records the draft as a completed task.
func (s *Store) Log(ctx context.Context, task *domain.Task) error {
	if err := checkNotCreated(cmdLog, task); err != nil {
		return err
	}
	_, err := s.execute(ctx, append([]string{cmdLog}, s.formatForCLI(task)...)...)
	return err
}

// Update sends the task's properties with `modify` and re-reads the task.
// Properties the task does not carry are left as they are in taskwarrior.
func (s *Store) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := checkUUID(cmdModify, task.UUID); err != nil {
		return nil, err
	}
	args := s.formatForCLI(task)
	if len(args) > 0 {
		if _, err := s.execute(ctx, append([]string{task.UUID, cmdModify}, args...)...); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, task.UUID)
}

// Complete marks the task done.
func (s *Store) Complete(ctx context.Context, uuid string) error {
	if err := checkUUID(cmdDone, uuid); err != nil {
		return err
	}
	_, err := s.execute(ctx, cmdDone, uuid)
	return err
}

// Delete deletes the task.
func (s *Store) Delete(ctx context.Context, uuid string) error {
	if err := checkUUID(cmdDelete, uuid); err != nil {
		return err
	}
	_, err := s.execute(ctx, cmdDelete, uuid)
	return err
}

// Get returns the task with the given uuid.
func (s *Store) Get(ctx context.Context, uuid string) (*domain.Task, error) {
	if err := checkUUID(cmdExport, uuid); err != nil {
		return nil, err
	}
	return s.exportOne(ctx, uuid)
}

// GetMultiple exports the given uuids. An empty set returns no tasks
// without calling taskwarrior, since a bare export lists everything.
func (s *Store) GetMultiple(ctx context.Context, uuids []string) ([]*domain.Task, error) {
	if len(uuids) == 0 {
		return []*domain.Task{}, nil
	}
	return s.export(ctx, uuids...)
}

// GetLatest returns the most recently added task.
func (s *Store) GetLatest(ctx context.Context) (*domain.Task, error) {
	return s.exportOne(ctx, filterLatest)
}

// GetActive returns pending tasks.
func (s *Store) GetActive(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterPending)
}

// GetCompleted returns completed tasks.
func (s *Store) GetCompleted(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterCompleted)
}

// GetAll returns active tasks followed by completed tasks.
func (s *Store) GetAll(ctx context.Context) ([]*domain.Task, error) {
	active, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.GetCompleted(ctx)
	if err != nil {
		return nil, err
	}
	return append(active, completed...), nil
}

// GetBlocking returns tasks other tasks depend on.
func (s *Store) GetBlocking(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterBlocking)
}

// GetBlocked returns tasks waiting on dependencies.
func (s *Store) GetBlocked(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterBlocked)
}

// GetReady returns actionable tasks.
func (s *Store) GetReady(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterReady)
}

// GetUnblocked returns tasks without pending dependencies.
func (s *Store) GetUnblocked(ctx context.Context) ([]*domain.Task, error) {
	return s.export(ctx, filterUnblocked)
}

// SearchFor encodes template like a draft and passes the tokens as export
// filters, so matching follows taskwarrior's attribute filter rules.
func (s *Store) SearchFor(ctx context.Context, template *domain.Task) ([]*domain.Task, error) {
	filter := s.formatForCLI(template)
	if len(filter) == 0 {
		return nil, &domain.PreconditionError{Op: "search", Err: domain.ErrEmptySearch}
	}
	return s.export(ctx, filter...)
}
