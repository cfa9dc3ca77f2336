package cli

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/twgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand_NoSubcommand_ShowsEffectiveConfig(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config")

	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Contains(t, out, "[taskwarrior]")
}

func TestConfigShowCommand(t *testing.T) {
	env := newTestEnv(t)
	env.manager.Info.Exists = true
	env.container.AppConfig.Taskwarrior.Program = "/opt/bin/task"

	out := env.mustRun(t, "config", "show")

	assert.Contains(t, out, "- "+env.manager.Info.Path+"\n")
	assert.NotContains(t, out, "(not found)")
	assert.Contains(t, out, "/opt/bin/task")
}

func TestConfigTemplateCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config", "template")

	var cfg domain.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, domain.DefaultProgram, cfg.Taskwarrior.Program)
}

func TestConfigInitCommand(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "config", "init", "--force")

	assert.Equal(t, "Created config file: "+env.manager.Info.Path+"\n", out)
	assert.True(t, env.manager.InitCalled)
	assert.True(t, env.manager.InitForce)
}

func TestConfigInitCommand_Error(t *testing.T) {
	env := newTestEnv(t)
	env.manager.InitErr = domain.ErrConfigExists

	_, _, err := env.run(t, "config", "init")

	require.ErrorIs(t, err, domain.ErrConfigExists)
	assert.False(t, env.manager.InitForce)
}
