package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_Table(t *testing.T) {
	env := newTestEnv(t)
	uuid := env.addTask(t, "Buy milk", "-p", "Home", "-t", "errand", "--due", "2024-05-01")

	out := env.mustRun(t, "list")

	for _, want := range []string{"ID", "UUID", "STATUS", "DESCRIPTION", shortUUID(uuid), "Buy milk", "Home", "errand", "2024-05-01", "Pending"} {
		assert.Contains(t, out, want)
	}
}

func TestListCommand_Empty(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "ls")

	assert.Equal(t, "No tasks.\n", out)
}

func TestListCommand_Filters(t *testing.T) {
	env := newTestEnv(t)
	blocker := env.addTask(t, "Blocker")
	env.addTask(t, "Blocked", "--depends", blocker)
	done := env.addTask(t, "Done")
	env.mustRun(t, "done", done)

	tests := []struct {
		filter string
		want   []string
	}{
		{"active", []string{"Blocker", "Blocked"}},
		{"completed", []string{"Done"}},
		{"all", []string{"Blocker", "Blocked", "Done"}},
		{"blocking", []string{"Blocker"}},
		{"blocked", []string{"Blocked"}},
		{"unblocked", []string{"Blocker"}},
		{"ready", []string{"Blocker"}},
		{"latest", []string{"Done"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			out := env.mustRun(t, "list", "--filter", tt.filter, "-o", "json")
			assert.Equal(t, tt.want, descriptions(t, out))
		})
	}
}

func TestListCommand_Some(t *testing.T) {
	env := newTestEnv(t)
	a := env.addTask(t, "A")
	env.addTask(t, "B")
	c := env.addTask(t, "C")

	out := env.mustRun(t, "list", "-f", "some", "--uuid", a, "--uuid", c, "-o", "json")

	assert.Equal(t, []string{"A", "C"}, descriptions(t, out))
}

func TestListCommand_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		want error
		name string
		args []string
	}{
		{name: "unknown filter", args: []string{"--filter", "urgent"}, want: domain.ErrUnknownFilter},
		{name: "some without uuids", args: []string{"--filter", "some"}, want: domain.ErrMissingUUIDs},
		{name: "bad uuid", args: []string{"--filter", "some", "--uuid", "nope"}, want: domain.ErrInvalidUUID},
		{name: "bad page", args: []string{"--page=x"}, want: domain.ErrInvalidPage},
		{name: "empty page", args: []string{"--page="}, want: domain.ErrInvalidPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, append([]string{"list"}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListCommand_Paging(t *testing.T) {
	env := newTestEnv(t)
	env.container.AppConfig.Server.PageSize = 2
	for _, d := range []string{"one", "two", "three"} {
		env.addTask(t, d)
	}

	first := env.mustRun(t, "list", "--page", "0", "-o", "json")
	second := env.mustRun(t, "list", "--page", "1", "-o", "json")
	unpaged := env.mustRun(t, "list", "-o", "json")

	assert.Equal(t, []string{"one", "two"}, descriptions(t, first))
	assert.Equal(t, []string{"three"}, descriptions(t, second))
	assert.Len(t, descriptions(t, unpaged), 3)
}

func TestListCommand_YAML(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, "Buy milk", "-t", "errand")

	out := env.mustRun(t, "list", "-o", "yaml")

	assert.True(t, strings.HasPrefix(out, "- "), out)
	assert.Contains(t, out, "description: Buy milk")
	assert.Contains(t, out, "- errand")
}

func TestSearchCommand(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, "Buy milk", "-p", "Home", "-t", "errand")
	env.addTask(t, "Buy bread", "-p", "Home")
	env.addTask(t, "Write report", "-p", "Work", "-t", "errand")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"project", []string{"-p", "Home"}, []string{"Buy milk", "Buy bread"}},
		{"tag", []string{"-t", "errand"}, []string{"Buy milk", "Write report"}},
		{"description substring", []string{"Buy"}, []string{"Buy milk", "Buy bread"}},
		{"combined", []string{"Buy", "-t", "errand"}, []string{"Buy milk"}},
		{"status", []string{"--status", "pending", "-p", "Work"}, []string{"Write report"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"search", "-o", "json"}, tt.args...)
			assert.Equal(t, tt.want, descriptions(t, env.mustRun(t, args...)))
		})
	}
}

func TestSearchCommand_EmptyTemplate(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "search")

	require.ErrorIs(t, err, domain.ErrEmptySearch)
}

func TestImportCommand(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- description: Buy milk
  tags: [errand]
- description: Call mom
  priority: H
`), 0o600))

	out := env.mustRun(t, "import", path)

	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Call mom")
	assert.Equal(t, 2, strings.Count(out, "Created task "))
	assert.Equal(t, 2, env.fake.Len())
}

func TestImportCommand_DryRunFromStdin(t *testing.T) {
	env := newTestEnv(t)
	root := NewRootCommand(env.container, "test")
	var stdout strings.Builder
	root.SetOut(&stdout)
	root.SetErr(&stdout)
	root.SetIn(strings.NewReader("tasks:\n  - description: Buy milk\n"))
	root.SetArgs([]string{"import", "--dry-run", "-"})

	require.NoError(t, root.ExecuteContext(t.Context()))

	assert.Contains(t, stdout.String(), "Would create 1 task(s):")
	assert.Contains(t, stdout.String(), "description: Buy milk")
	assert.Equal(t, 0, env.fake.Len())
}

func TestImportCommand_InvalidFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- description: ok\n- project: none\n"), 0o600))

	_, _, err := env.run(t, "import", path)

	require.ErrorIs(t, err, domain.ErrEmptyDescription)
	assert.Equal(t, 0, env.fake.Len())
}

func TestImportCommand_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "import", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read file")
}

// descriptions decodes a JSON task list and returns the descriptions.
func descriptions(t *testing.T, out string) []string {
	t.Helper()
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	got := make([]string, 0, len(tasks))
	for _, task := range tasks {
		desc, _ := task["description"].(string)
		got = append(got, desc)
	}
	return got
}
