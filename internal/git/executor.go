package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner abstracts shell command execution for testability.
type CommandRunner interface {
	Run(dir string, args ...string) (string, error)
}

// CommandError is returned when git exits non-zero.
// Stderr holds the process error output verbatim.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %v failed: %s", e.Args, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Stderr returns the raw error output carried by err, or err's message
// when it did not come from a git process.
func Stderr(err error) string {
	if err == nil {
		return ""
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.Stderr != "" {
		return cmdErr.Stderr
	}
	return err.Error()
}

// OSCommandRunner executes real git commands via os/exec.
// A zero Timeout means no deadline.
type OSCommandRunner struct {
	Timeout time.Duration
}

func (r OSCommandRunner) Run(dir string, args ...string) (string, error) {
	ctx := context.Background()
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimRight(string(exitErr.Stderr), "\n")
			if ctx.Err() != nil {
				stderr = fmt.Sprintf("timed out after %s", r.Timeout)
			}
			return "", &CommandError{Args: args, Stderr: stderr, Err: err}
		}
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return string(out), nil
}

// FakeCommandRunner is a test double that returns preset output and records calls.
type FakeCommandRunner struct {
	Outputs map[string]string
	Errors  map[string]error
	Calls   [][]string
}

func (r *FakeCommandRunner) key(dir string, args ...string) string {
	return fmt.Sprintf("%s:%v", dir, args)
}

func (r *FakeCommandRunner) Run(dir string, args ...string) (string, error) {
	r.Calls = append(r.Calls, append([]string{dir}, args...))
	key := r.key(dir, args...)
	if err, ok := r.Errors[key]; ok {
		return "", err
	}
	if out, ok := r.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("FakeCommandRunner: no output for key %q", key)
}
