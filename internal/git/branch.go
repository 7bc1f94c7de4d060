package git

import (
	"fmt"
	"strings"
)

// Repo runs branch commands against a single repository directory.
type Repo struct {
	Runner CommandRunner
	Dir    string
}

// ListBranches runs `git branch --list` and returns the raw lines,
// including the leading marker column git uses for the current branch.
func (r Repo) ListBranches() ([]string, error) {
	out, err := r.Runner.Run(r.Dir, "branch", "--list", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	return parseBranchList(out), nil
}

// Checkout switches the working tree to name. On failure the returned
// error wraps a *CommandError whose Stderr is git's message.
func (r Repo) Checkout(name string) error {
	if name == "" {
		return fmt.Errorf("checkout: empty branch name")
	}
	_, err := r.Runner.Run(r.Dir, "checkout", name)
	return err
}

func parseBranchList(output string) []string {
	output = strings.TrimRight(output, "\n")
	if strings.TrimSpace(output) == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
