// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/twgate/internal/api"
	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/infra/config"
	"github.com/runoshun/twgate/internal/infra/executor"
	"github.com/runoshun/twgate/internal/infra/logging"
	"github.com/runoshun/twgate/internal/infra/taskwarrior"
	"github.com/runoshun/twgate/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskStore
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	logFile   io.Closer
}

// New creates a new Container from the configuration files.
// configPath is an explicit config file (--config) and may be empty.
// Log records go to stderr unless the config names a log file.
func New(configPath string, stderr io.Writer) (*Container, error) {
	if stderr == nil {
		stderr = os.Stderr
	}

	configLoader := config.NewLoader(configPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	// Create logger
	logFile := logging.New(appConfig.Log.File, logging.ParseLevel(appConfig.Log.Level), stderr)
	logger := logFile.Slog()

	// Create taskwarrior gateway
	store := taskwarrior.New(
		executor.NewClient(),
		taskwarrior.WithProgram(appConfig.Taskwarrior.Program),
		taskwarrior.WithRC(appConfig.Taskwarrior.RC),
		taskwarrior.WithLogger(logger),
	)

	return &Container{
		Tasks:         store,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(),
		Logger:        logger,
		AppConfig:     appConfig,
		logFile:       logFile,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, tasks domain.TaskStore, configManager domain.ConfigManager, logger *slog.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		Tasks:         tasks,
		ConfigManager: configManager,
		Logger:        logger,
		AppConfig:     cfg,
	}
}

// CheckRC verifies that the configured taskrc exists.
// Commands that talk to taskwarrior call it before running.
func (c *Container) CheckRC() error {
	return config.CheckRC(c.AppConfig)
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.logFile == nil {
		return nil
	}
	return c.logFile.Close()
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks)
}

// ModifyTaskUseCase returns a new ModifyTask use case.
func (c *Container) ModifyTaskUseCase() *usecase.ModifyTask {
	return usecase.NewModifyTask(c.Tasks)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks)
}

// ListTasksUseCase returns a new ListTasks use case paging by the configured size.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.AppConfig.Server.PageSize)
}

// SearchTasksUseCase returns a new SearchTasks use case.
func (c *Container) SearchTasksUseCase() *usecase.SearchTasks {
	return usecase.NewSearchTasks(c.Tasks)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Tasks)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// APIServer returns the HTTP server over the task list.
func (c *Container) APIServer() *api.Server {
	return api.NewServer(c.ListTasksUseCase(), c.Logger)
}
