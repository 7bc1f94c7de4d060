// Package action turns key presses into branch list operations and
// tracks the error overlay.
package action

import (
	"context"

	"github.com/mikanfactory/jopen/internal/git"
	"github.com/mikanfactory/jopen/internal/model"
	"github.com/mikanfactory/jopen/internal/selection"
)

// State is the controller's mode.
type State int

const (
	StateNormal State = iota
	StateErrorOverlay
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateErrorOverlay:
		return "error-overlay"
	default:
		return "unknown"
	}
}

// Action is what the caller must do after a key was handled.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCheckout
)

// Key names, as reported by bubbletea's KeyMsg.String.
const (
	KeyQuit          = "q"
	KeyQuitUpper     = "Q"
	KeyInterrupt     = "ctrl+c"
	KeyNext          = "j"
	KeyDown          = "down"
	KeyPrevious      = "k"
	KeyUp            = "up"
	KeyActivate      = "enter"
	KeyToggleOverlay = "e"
)

// Controller owns the overlay state and drives the selection list.
type Controller struct {
	list    *selection.List
	state   State
	overlay model.Overlay

	keepIndex bool
	lastIndex int
}

// New returns a controller in StateNormal driving list.
func New(list *selection.List) *Controller {
	return &Controller{list: list}
}

// State returns the current mode.
func (c *Controller) State() State {
	return c.state
}

// Overlay returns the overlay as it should be drawn.
func (c *Controller) Overlay() model.Overlay {
	return c.overlay
}

// List returns the selection list the controller drives.
func (c *Controller) List() *selection.List {
	return c.list
}

// HandleKey applies key and reports what the caller must do next.
func (c *Controller) HandleKey(key string) Action {
	switch key {
	case KeyQuit, KeyQuitUpper, KeyInterrupt:
		return ActionQuit
	case KeyNext, KeyDown:
		c.list.MoveNext()
		return ActionNone
	case KeyPrevious, KeyUp:
		c.list.MovePrevious()
		return ActionNone
	case KeyToggleOverlay:
		c.ToggleOverlay()
		return ActionNone
	}

	if c.state == StateErrorOverlay {
		c.Dismiss()
		return ActionNone
	}

	if key == KeyActivate {
		if _, ok := c.Target(); ok {
			return ActionCheckout
		}
	}
	return ActionNone
}

// Target returns the checkout argument for the focused entry.
func (c *Controller) Target() (string, bool) {
	entry, ok := c.list.Focused()
	if !ok {
		return "", false
	}
	name := entry.Branch.CheckoutName()
	return name, name != ""
}

// CheckoutSucceeded drops any retained error message and arms the next
// Apply to keep the focus position.
func (c *Controller) CheckoutSucceeded() {
	c.armKeepIndex()
	c.Dismiss()
}

// CheckoutFailed shows err's git output in the overlay. The next Apply
// keeps the focus position as well, since every attempt is followed by a refresh.
func (c *Controller) CheckoutFailed(err error) {
	c.armKeepIndex()
	c.ShowError(git.Stderr(err))
}

// ShowError replaces the overlay message and switches to StateErrorOverlay.
func (c *Controller) ShowError(message string) {
	c.overlay = model.Overlay{Visible: true, Message: message}
	c.state = StateErrorOverlay
}

// Dismiss clears the overlay and returns to StateNormal.
func (c *Controller) Dismiss() {
	c.overlay = model.Overlay{}
	c.state = StateNormal
}

// ToggleOverlay hides a visible overlay without clearing its message, or
// shows a hidden one again. It does nothing when there is no message.
func (c *Controller) ToggleOverlay() {
	if c.overlay.Message == "" {
		return
	}
	if c.state == StateErrorOverlay {
		c.overlay.Visible = false
		c.state = StateNormal
		return
	}
	c.overlay.Visible = true
	c.state = StateErrorOverlay
}

// Apply loads a freshly reconciled list. After a checkout attempt the
// previous focus position is kept (clamped to the new length); otherwise
// focus goes to current.
func (c *Controller) Apply(entries []model.BranchEntry, current int) {
	if c.keepIndex {
		current = c.lastIndex
		if current >= len(entries) {
			current = len(entries) - 1
		}
		c.keepIndex = false
	}
	c.list.SetData(entries, current)
}

func (c *Controller) armKeepIndex() {
	c.keepIndex = true
	c.lastIndex = c.list.Index()
}

// Activate checks out the focused branch and refreshes synchronously.
// Checkout failures end up in the overlay; only a failed refresh is returned.
func (c *Controller) Activate(ctx context.Context, r *Refresher) error {
	name, ok := c.Target()
	if !ok {
		return nil
	}

	if err := r.Checkout(name); err != nil {
		c.CheckoutFailed(err)
	} else {
		c.CheckoutSucceeded()
	}

	snap, err := r.Refresh(ctx)
	if err != nil {
		return err
	}
	c.Apply(snap.Entries, snap.Current)
	return nil
}
