// Package selection holds the branch list and its focus cursor.
package selection

import "github.com/mikanfactory/jopen/internal/model"

// FocusFunc is called after the focused entry changes.
// ok is false when the list is empty.
type FocusFunc func(index int, entry model.BranchEntry, ok bool)

// List is an ordered set of entries with a non-wrapping focus cursor.
type List struct {
	entries   []model.BranchEntry
	focus     int
	listeners []FocusFunc
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// OnFocusChange registers fn. Listeners run synchronously in registration order.
func (l *List) OnFocusChange(fn FocusFunc) {
	l.listeners = append(l.listeners, fn)
}

// SetData replaces the entries and focuses current, clamped into range.
// Listeners are always notified once, since the displayed entries changed.
func (l *List) SetData(entries []model.BranchEntry, current int) {
	l.entries = entries
	l.focus = clamp(current, len(entries))
	l.notify()
}

// MoveNext focuses the following entry. It reports false at the last entry.
func (l *List) MoveNext() bool {
	return l.SetFocus(l.focus + 1)
}

// MovePrevious focuses the preceding entry. It reports false at the first entry.
func (l *List) MovePrevious() bool {
	return l.SetFocus(l.focus - 1)
}

// SetFocus focuses index i. Out-of-range indexes and the already focused
// index are ignored and report false.
func (l *List) SetFocus(i int) bool {
	if i < 0 || i >= len(l.entries) || i == l.focus {
		return false
	}
	l.focus = i
	l.notify()
	return true
}

// Focused returns the focused entry, or false when the list is empty.
func (l *List) Focused() (model.BranchEntry, bool) {
	if len(l.entries) == 0 {
		return model.BranchEntry{}, false
	}
	return l.entries[l.focus], true
}

// Index returns the focus index. It is 0 for an empty list.
func (l *List) Index() int {
	return l.focus
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Entries returns the entries in display order.
func (l *List) Entries() []model.BranchEntry {
	return l.entries
}

func (l *List) notify() {
	entry, ok := l.Focused()
	for _, fn := range l.listeners {
		fn(l.focus, entry, ok)
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
