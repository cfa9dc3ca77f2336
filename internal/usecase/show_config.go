package usecase

import (
	"context"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/twgate/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct {
	Effective *domain.Config // Loaded configuration to render
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	GlobalConfig domain.ConfigInfo // Global config file info
	Effective    string            // Effective configuration as TOML
	Warnings     []string          // Problems found while loading
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, in ShowConfigInput) (*ShowConfigOutput, error) {
	out := &ShowConfigOutput{
		GlobalConfig: uc.configManager.GlobalConfigInfo(),
	}
	if in.Effective != nil {
		data, err := toml.Marshal(in.Effective)
		if err != nil {
			return nil, err
		}
		out.Effective = string(data)
		out.Warnings = in.Effective.Warnings
	}
	return out, nil
}
