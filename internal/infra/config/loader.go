// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/twgate/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	path          string // Explicit config file (--config); may be empty
	globalConfDir string // Path to global config directory (e.g., ~/.config/twgate)
}

// NewLoader creates a new Loader. path is an explicit config file and may be empty.
func NewLoader(path string) *Loader {
	return &Loader{
		path:          path,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(path, globalConfDir string) *Loader {
	return &Loader{
		path:          path,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalAppDir(configHome)
}

// Load returns the merged configuration (explicit file + global).
// The explicit file takes precedence over the global one and, unlike the
// global file, must exist.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var explicit *domain.Config
	if l.path != "" {
		explicit, err = l.loadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", l.path, err)
		}
	}

	// Merge: default <- global <- explicit (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if explicit != nil {
		base = mergeConfigs(base, explicit)
	}
	base.Taskwarrior.RC = expandHome(base.Taskwarrior.RC)
	base.Log.File = expandHome(base.Log.File)
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	return l.loadFile(globalPath)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "taskwarrior":
			for k, v := range m {
				switch k {
				case "program":
					if s, ok := v.(string); ok {
						res.Taskwarrior.Program = s
					}
				case "rc":
					if s, ok := v.(string); ok {
						res.Taskwarrior.RC = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [taskwarrior]: %s", k))
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				case "page_size":
					if n, ok := v.(int64); ok && n > 0 {
						res.Server.PageSize = int(n)
					} else {
						warnings = append(warnings, fmt.Sprintf("invalid value in [server]: page_size = %v", v))
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				case "file":
					if s, ok := v.(string); ok {
						res.Log.File = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Taskwarrior: base.Taskwarrior,
		Server:      base.Server,
		Log:         base.Log,
		Warnings:    append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Taskwarrior.Program != "" {
		result.Taskwarrior.Program = override.Taskwarrior.Program
	}
	if override.Taskwarrior.RC != "" {
		result.Taskwarrior.RC = override.Taskwarrior.RC
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.PageSize > 0 {
		result.Server.PageSize = override.Server.PageSize
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}
	return result
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// CheckRC verifies that the configured taskrc exists.
func CheckRC(cfg *domain.Config) error {
	if cfg.Taskwarrior.RC == "" {
		return nil
	}
	if _, err := os.Stat(cfg.Taskwarrior.RC); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRCFileNotFound, cfg.Taskwarrior.RC)
	}
	return nil
}
