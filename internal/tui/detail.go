package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/mikanfactory/jopen/internal/model"
)

// detailPane shows the issue attached to the focused branch. It is fed
// by the selection list's focus notifications.
type detailPane struct {
	vp       viewport.Model
	renderer *glamour.TermRenderer
	entry    model.BranchEntry
	ok       bool
}

func newDetailPane(width, height int) *detailPane {
	d := &detailPane{vp: viewport.New(width, height)}
	d.renderer = newRenderer(width)
	return d
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-2, 10)),
	)
	if err != nil {
		return nil
	}
	return r
}

// Show is a selection.FocusFunc.
func (d *detailPane) Show(_ int, entry model.BranchEntry, ok bool) {
	d.entry = entry
	d.ok = ok
	d.vp.SetContent(d.content())
	d.vp.GotoTop()
}

// SetSize resizes the pane and rewraps the description.
func (d *detailPane) SetSize(width, height int) {
	if width == d.vp.Width && height == d.vp.Height {
		return
	}
	d.vp.Width = width
	d.vp.Height = height
	d.renderer = newRenderer(width)
	d.vp.SetContent(d.content())
}

func (d *detailPane) View() string {
	return d.vp.View()
}

func (d *detailPane) content() string {
	if !d.ok {
		return detailDimStyle.Render("No branch selected")
	}

	var b strings.Builder
	b.WriteString(detailBranchStyle.Render(d.entry.Branch.CheckoutName()))
	b.WriteString("\n\n")

	if d.entry.Detail.IsZero() {
		b.WriteString(detailDimStyle.Render("No matching issue"))
		return b.String()
	}

	if d.entry.IssueKey != "" {
		b.WriteString(issueKeyStyle.Render(d.entry.IssueKey))
		b.WriteString(" ")
	}
	b.WriteString(detailTitleStyle.Render(d.entry.Detail.Title))
	b.WriteString("\n")

	if d.entry.Detail.Description != "" {
		b.WriteString(d.renderDescription(d.entry.Detail.Description))
	}
	return b.String()
}

func (d *detailPane) renderDescription(desc string) string {
	if d.renderer == nil {
		return "\n" + desc
	}
	out, err := d.renderer.Render(desc)
	if err != nil {
		return "\n" + desc
	}
	return out
}
