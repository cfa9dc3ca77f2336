package domain

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand for program with args.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{
		Program: program,
		Args:    args,
		Dir:     dir,
	}
}

// Argv returns the program followed by its arguments.
func (c *ExecCommand) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Program)
	return append(argv, c.Args...)
}

// ExecResult is the outcome of a finished process.
// Both streams are fully drained before the result is returned.
// Fields are ordered to minimize memory padding.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success returns true if the process exited with status 0.
func (r *ExecResult) Success() bool {
	return r.ExitCode == 0
}
