package action

import (
	"context"
	"fmt"
	"testing"

	"github.com/mikanfactory/jopen/internal/git"
	"github.com/mikanfactory/jopen/internal/model"
	"github.com/mikanfactory/jopen/internal/selection"
)

const listKey = "/repo:[branch --list --no-color]"

type fakeIssues struct {
	issues map[string]model.IssueDetail
	calls  int
}

func (f *fakeIssues) SearchAssignedActiveIssues(context.Context) map[string]model.IssueDetail {
	f.calls++
	return f.issues
}

func newTestRefresher(runner *git.FakeCommandRunner, issues map[string]model.IssueDetail) (*Refresher, *fakeIssues) {
	fi := &fakeIssues{issues: issues}
	return &Refresher{
		Branches: git.Repo{Runner: runner, Dir: "/repo"},
		Issues:   fi,
	}, fi
}

func entries(names ...string) []model.BranchEntry {
	out := make([]model.BranchEntry, len(names))
	for i, n := range names {
		out[i] = model.BranchEntry{Branch: model.Branch{Name: n}}
	}
	return out
}

func TestHandleKey_Quit(t *testing.T) {
	for _, key := range []string{"q", "Q", "ctrl+c"} {
		for _, state := range []State{StateNormal, StateErrorOverlay} {
			c := New(selection.New())
			if state == StateErrorOverlay {
				c.ShowError("boom")
			}
			if got := c.HandleKey(key); got != ActionQuit {
				t.Errorf("HandleKey(%q) in %s = %v, want ActionQuit", key, state, got)
			}
		}
	}
}

func TestHandleKey_Moves(t *testing.T) {
	list := selection.New()
	c := New(list)
	c.Apply(entries("  a", "* b", "  c"), 0)

	c.HandleKey("j")
	c.HandleKey("down")
	c.HandleKey("j") // boundary
	if list.Index() != 2 {
		t.Errorf("Index() = %d, want 2", list.Index())
	}

	c.HandleKey("k")
	c.HandleKey("up")
	c.HandleKey("k") // boundary
	if list.Index() != 0 {
		t.Errorf("Index() = %d, want 0", list.Index())
	}
}

func TestHandleKey_MovesWhileOverlayShown(t *testing.T) {
	list := selection.New()
	c := New(list)
	c.Apply(entries("  a", "  b"), 0)
	c.ShowError("boom")

	c.HandleKey("j")

	if list.Index() != 1 {
		t.Errorf("Index() = %d, want 1", list.Index())
	}
	if c.State() != StateErrorOverlay {
		t.Errorf("State() = %s, want overlay kept", c.State())
	}
	if c.Overlay().Message != "boom" {
		t.Errorf("Message = %q, want boom", c.Overlay().Message)
	}
}

func TestHandleKey_EnterRequestsCheckout(t *testing.T) {
	c := New(selection.New())
	c.Apply(entries("  main", "* feature-12"), 1)

	if got := c.HandleKey("enter"); got != ActionCheckout {
		t.Fatalf("HandleKey(enter) = %v, want ActionCheckout", got)
	}
	name, ok := c.Target()
	if !ok || name != "feature-12" {
		t.Errorf("Target() = %q, %v; want feature-12, true", name, ok)
	}
}

func TestHandleKey_EnterOnEmptyList(t *testing.T) {
	c := New(selection.New())

	if got := c.HandleKey("enter"); got != ActionNone {
		t.Errorf("HandleKey(enter) = %v, want ActionNone", got)
	}
}

func TestHandleKey_AnyKeyDismissesOverlay(t *testing.T) {
	for _, key := range []string{"x", "enter", "esc", " "} {
		c := New(selection.New())
		c.Apply(entries("* main"), 0)
		c.ShowError("boom")

		if got := c.HandleKey(key); got != ActionNone {
			t.Errorf("HandleKey(%q) = %v, want ActionNone", key, got)
		}
		if c.State() != StateNormal {
			t.Errorf("HandleKey(%q): State() = %s, want normal", key, c.State())
		}
		if c.Overlay() != (model.Overlay{}) {
			t.Errorf("HandleKey(%q): overlay not cleared: %+v", key, c.Overlay())
		}
	}
}

func TestToggleOverlay(t *testing.T) {
	list := selection.New()
	c := New(list)
	c.Apply(entries("  a", "  b"), 1)

	c.HandleKey("e")
	if c.State() != StateNormal {
		t.Fatalf("toggle without a message should stay normal, got %s", c.State())
	}

	c.ShowError("boom")
	c.HandleKey("e")
	if c.State() != StateNormal || c.Overlay().Visible {
		t.Errorf("toggle should hide overlay: state=%s overlay=%+v", c.State(), c.Overlay())
	}
	if c.Overlay().Message != "boom" {
		t.Errorf("toggle must keep the message, got %q", c.Overlay().Message)
	}
	if list.Index() != 1 {
		t.Errorf("toggle must not touch selection, Index() = %d", list.Index())
	}

	c.HandleKey("e")
	if c.State() != StateErrorOverlay || !c.Overlay().Visible {
		t.Errorf("second toggle should show overlay again: state=%s overlay=%+v", c.State(), c.Overlay())
	}
}

func TestApply_FocusesCurrent(t *testing.T) {
	list := selection.New()
	c := New(list)

	c.Apply(entries("  a", "  b", "* feature-x"), 2)

	if list.Index() != 2 {
		t.Errorf("Index() = %d, want 2", list.Index())
	}
}

func TestApply_AfterCheckoutKeepsIndex(t *testing.T) {
	list := selection.New()
	c := New(list)
	c.Apply(entries("* a", "  b", "  c"), 0)
	list.MoveNext()

	c.CheckoutSucceeded()
	c.Apply(entries("  a", "* b", "  c"), 1)
	if list.Index() != 1 {
		t.Errorf("Index() = %d, want 1", list.Index())
	}

	// Next plain refresh uses current again.
	c.Apply(entries("* a", "  b", "  c"), 0)
	if list.Index() != 0 {
		t.Errorf("Index() = %d, want 0", list.Index())
	}
}

func TestApply_AfterCheckoutClampsIndex(t *testing.T) {
	list := selection.New()
	c := New(list)
	c.Apply(entries("  a", "  b", "* c"), 2)

	c.CheckoutSucceeded()
	c.Apply(entries("* a", "  b"), 0)

	if list.Index() != 1 {
		t.Errorf("Index() = %d, want clamped 1", list.Index())
	}
}

func TestActivate_Success(t *testing.T) {
	runner := &git.FakeCommandRunner{
		Outputs: map[string]string{
			listKey:                  "* main\n  feature-PROJ-12\n",
			"/repo:[checkout main]": "",
		},
	}
	r, issues := newTestRefresher(runner, map[string]model.IssueDetail{
		"PROJ-12": {Title: "Fix bug", Description: "desc"},
	})
	list := selection.New()
	c := New(list)

	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	c.Apply(snap.Entries, snap.Current)

	if err := c.Activate(context.Background(), r); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if c.State() != StateNormal {
		t.Errorf("State() = %s, want normal", c.State())
	}
	if issues.calls != 2 {
		t.Errorf("issue source called %d times, want 2", issues.calls)
	}
	if list.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", list.Len())
	}
	if got := list.Entries()[1].Detail.Title; got != "Fix bug" {
		t.Errorf("Detail.Title = %q, want Fix bug", got)
	}
}

func TestActivate_CheckoutFailureShowsStderr(t *testing.T) {
	stderr := "error: pathspec 'feature-12' did not match"
	runner := &git.FakeCommandRunner{
		Outputs: map[string]string{
			listKey: "  main\n* feature-12\n",
		},
		Errors: map[string]error{
			"/repo:[checkout feature-12]": &git.CommandError{
				Args:   []string{"checkout", "feature-12"},
				Stderr: stderr,
			},
		},
	}
	r, _ := newTestRefresher(runner, map[string]model.IssueDetail{
		"PROJ-12": {Title: "Fix bug", Description: "desc"},
	})
	list := selection.New()
	c := New(list)

	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	c.Apply(snap.Entries, snap.Current)
	if list.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", list.Index())
	}

	if err := c.Activate(context.Background(), r); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if c.State() != StateErrorOverlay {
		t.Errorf("State() = %s, want error-overlay", c.State())
	}
	if c.Overlay().Message != stderr {
		t.Errorf("Message = %q, want %q", c.Overlay().Message, stderr)
	}
	if list.Len() != 2 {
		t.Errorf("refresh after failure should list both branches, got %d", list.Len())
	}
	if list.Index() != 1 {
		t.Errorf("Index() = %d, want 1", list.Index())
	}
}

func TestActivate_WorktreeBranchUsesBareName(t *testing.T) {
	runner := &git.FakeCommandRunner{
		Outputs: map[string]string{
			listKey:                 "* main\n+ feat\n",
			"/repo:[checkout feat]": "",
		},
	}
	r, _ := newTestRefresher(runner, nil)
	list := selection.New()
	c := New(list)

	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	c.Apply(snap.Entries, snap.Current)
	c.HandleKey(KeyNext)

	if name, ok := c.Target(); !ok || name != "feat" {
		t.Fatalf("Target() = %q, %v, want feat", name, ok)
	}
	if err := c.Activate(context.Background(), r); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if c.State() != StateNormal {
		t.Errorf("State() = %s, want normal (overlay %q)", c.State(), c.Overlay().Message)
	}
}

func TestCheckoutSucceeded_ClearsRetainedMessage(t *testing.T) {
	c := New(selection.New())
	c.Apply(entries("  a", "  b"), 0)

	c.CheckoutFailed(fmt.Errorf("old failure"))
	c.HandleKey(KeyToggleOverlay)
	if c.Overlay().Message == "" {
		t.Fatal("hidden overlay should retain its message")
	}

	c.CheckoutSucceeded()
	if c.Overlay().Message != "" {
		t.Errorf("Message = %q, want cleared after a successful checkout", c.Overlay().Message)
	}

	c.HandleKey(KeyToggleOverlay)
	if c.State() != StateNormal || c.Overlay().Visible {
		t.Errorf("toggle after success should show nothing: state=%s overlay=%+v", c.State(), c.Overlay())
	}
}

func TestActivate_EmptyList(t *testing.T) {
	runner := &git.FakeCommandRunner{}
	r, _ := newTestRefresher(runner, nil)
	c := New(selection.New())

	if err := c.Activate(context.Background(), r); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("no git calls expected, got %v", runner.Calls)
	}
}

func TestRefresh_ListingErrorReturned(t *testing.T) {
	runner := &git.FakeCommandRunner{
		Errors: map[string]error{listKey: fmt.Errorf("not a git repository")},
	}
	r, issues := newTestRefresher(runner, nil)

	if _, err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if issues.calls != 0 {
		t.Errorf("issue source should not be queried after a listing failure")
	}
}

func TestRefresh_EmptyIssuesLeaveDetailsEmpty(t *testing.T) {
	runner := &git.FakeCommandRunner{
		Outputs: map[string]string{listKey: "  main\n* feature-PROJ-12\n"},
	}
	r, _ := newTestRefresher(runner, map[string]model.IssueDetail{})

	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(snap.Entries) != 2 || snap.Current != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}
	for _, e := range snap.Entries {
		if !e.Detail.IsZero() {
			t.Errorf("%q: Detail = %+v, want empty", e.Branch.Name, e.Detail)
		}
	}
}

func TestRefresh_NilIssueSource(t *testing.T) {
	runner := &git.FakeCommandRunner{
		Outputs: map[string]string{listKey: "* main\n"},
	}
	r := &Refresher{Branches: git.Repo{Runner: runner, Dir: "/repo"}}

	snap, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(snap.Entries) != 1 {
		t.Errorf("len(Entries) = %d, want 1", len(snap.Entries))
	}
}
