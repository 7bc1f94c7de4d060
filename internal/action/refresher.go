package action

import (
	"context"
	"io"
	"log/slog"

	"github.com/mikanfactory/jopen/internal/model"
	"github.com/mikanfactory/jopen/internal/reconcile"
)

// BranchSource lists and checks out branches.
type BranchSource interface {
	ListBranches() ([]string, error)
	Checkout(name string) error
}

// IssueSource returns issue key to detail. It never fails; an unavailable
// tracker yields an empty map.
type IssueSource interface {
	SearchAssignedActiveIssues(ctx context.Context) map[string]model.IssueDetail
}

// Snapshot is the result of one refresh.
type Snapshot struct {
	Entries []model.BranchEntry
	Current int
}

// Refresher rebuilds the branch list from its sources.
type Refresher struct {
	Branches BranchSource
	Issues   IssueSource
	Options  reconcile.Options
	Logger   *slog.Logger
}

func (r *Refresher) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Refresh lists branches, searches issues and reconciles them.
// Only a branch listing failure is returned.
func (r *Refresher) Refresh(ctx context.Context) (Snapshot, error) {
	lines, err := r.Branches.ListBranches()
	if err != nil {
		r.logger().Error("refresh failed", "error", err)
		return Snapshot{}, err
	}

	var issues map[string]model.IssueDetail
	if r.Issues != nil {
		issues = r.Issues.SearchAssignedActiveIssues(ctx)
	}

	entries, current := reconcile.ReconcileWith(lines, issues, r.Options)
	r.logger().Debug("refreshed", "branches", len(entries), "issues", len(issues), "current", current)
	return Snapshot{Entries: entries, Current: current}, nil
}

// Checkout switches to name.
func (r *Refresher) Checkout(name string) error {
	r.logger().Info("checkout", "branch", name)
	if err := r.Branches.Checkout(name); err != nil {
		r.logger().Warn("checkout failed", "branch", name, "error", err)
		return err
	}
	return nil
}
