package model

import (
	"strings"
	"time"
)

// CurrentMarker is the character git prints in front of the checked-out branch.
const CurrentMarker = "*"

// Config represents the application configuration loaded from YAML and the environment.
type Config struct {
	Jira      JiraConfig `yaml:"jira"`
	Git       GitConfig  `yaml:"git"`
	ListWidth int        `yaml:"list_width"`
	DebugLog  string     `yaml:"debug_log"`
}

// JiraConfig holds the issue tracker connection settings.
type JiraConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Username   string        `yaml:"username"`
	Token      string        `yaml:"token"`
	Statuses   []string      `yaml:"statuses"`
	MaxResults int           `yaml:"max_results"`
	Timeout    time.Duration `yaml:"timeout"`
	IgnoreCase bool          `yaml:"ignore_case"`
}

// GitConfig holds settings for git subprocesses.
type GitConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Branch is a single line of `git branch` output.
// Name keeps the two-column marker prefix exactly as git printed it.
type Branch struct {
	Name      string
	IsCurrent bool
}

// CheckoutName returns the branch name without git's two-column marker
// prefix ("* " current, "+ " checked out in a linked worktree, "  " other).
func (b Branch) CheckoutName() string {
	name := b.Name
	if len(name) >= 2 && name[1] == ' ' && strings.ContainsRune("*+ ", rune(name[0])) {
		name = name[2:]
	}
	return strings.TrimSpace(name)
}

// IssueDetail is the tracker metadata attached to a branch.
type IssueDetail struct {
	Title       string
	Description string
}

// IsZero reports whether no issue metadata is attached.
func (d IssueDetail) IsZero() bool {
	return d.Title == "" && d.Description == ""
}

// BranchEntry is a branch merged with the issue whose key its name contains.
type BranchEntry struct {
	Branch   Branch
	Detail   IssueDetail
	IssueKey string
}

// Overlay is the transient error pane shown over the branch list.
type Overlay struct {
	Visible bool
	Message string
}
