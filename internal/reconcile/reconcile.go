// Package reconcile merges git branch lines with issue tracker results.
package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mikanfactory/jopen/internal/model"
)

// Options tunes how issue keys are matched against branch names.
type Options struct {
	// IgnoreCase compares keys and branch names after Unicode case folding.
	IgnoreCase bool
}

// Reconcile is ReconcileWith using default options.
func Reconcile(lines []string, issues map[string]model.IssueDetail) ([]model.BranchEntry, int) {
	return ReconcileWith(lines, issues, Options{})
}

// ReconcileWith returns one entry per non-blank branch line, in input order,
// and the index of the entry marked as the current branch (0 when none is).
//
// A branch gets the detail of the longest issue key contained in its name.
// Keys of equal length are tried in lexical order.
func ReconcileWith(lines []string, issues map[string]model.IssueDetail, opts Options) ([]model.BranchEntry, int) {
	keys := orderedKeys(issues)

	fold := func(s string) string { return s }
	if opts.IgnoreCase {
		caser := cases.Fold()
		fold = caser.String
	}

	foldedKeys := make([]string, len(keys))
	for i, k := range keys {
		foldedKeys[i] = fold(k)
	}

	entries := make([]model.BranchEntry, 0, len(lines))
	current := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry := model.BranchEntry{Branch: model.Branch{Name: line}}

		if current < 0 && strings.Contains(line, model.CurrentMarker) {
			entry.Branch.IsCurrent = true
			current = len(entries)
		}

		name := fold(line)
		for i, k := range foldedKeys {
			if k != "" && strings.Contains(name, k) {
				entry.IssueKey = keys[i]
				entry.Detail = issues[keys[i]]
				break
			}
		}

		entries = append(entries, entry)
	}

	if current < 0 {
		current = 0
	}
	return entries, current
}

func orderedKeys(issues map[string]model.IssueDetail) []string {
	keys := make([]string, 0, len(issues))
	for k := range issues {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
