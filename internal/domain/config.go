package domain

import (
	"bytes"
	_ "embed"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings    []string          `toml:"-"`
	Taskwarrior TaskwarriorConfig `toml:"taskwarrior"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// TaskwarriorConfig holds settings from the [taskwarrior] section.
type TaskwarriorConfig struct {
	Program string `toml:"program,omitempty"` // Executable name or path
	RC      string `toml:"rc,omitempty"`      // Optional taskrc passed as rc:<path>
}

// ServerConfig holds settings from the [server] section.
type ServerConfig struct {
	Addr     string `toml:"addr,omitempty"`      // Listen address
	PageSize int    `toml:"page_size,omitempty"` // Tasks per page
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	File  string `toml:"file,omitempty"`  // Log file; empty logs to stderr
}

// Directory and file names.
const (
	AppDirName     = "twgate"      // Directory name under the config home
	ConfigFileName = "config.toml" // Config file name
)

// Default configuration values.
const (
	DefaultProgram  = "task"
	DefaultAddr     = ":8080"
	DefaultPageSize = 10
	DefaultLogLevel = "info"
)

// GlobalAppDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalAppDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalAppDir(configHome), ConfigFileName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Taskwarrior: TaskwarriorConfig{
			Program: DefaultProgram,
		},
		Server: ServerConfig{
			Addr:     DefaultAddr,
			PageSize: DefaultPageSize,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		return configTemplateContent
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}
