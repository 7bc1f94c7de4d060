package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/mikanfactory/jopen/internal/action"
	"github.com/mikanfactory/jopen/internal/model"
	"github.com/mikanfactory/jopen/internal/selection"
)

// RefreshedMsg is sent when the branch list has been rebuilt.
type RefreshedMsg struct {
	Snapshot action.Snapshot
}

// RefreshErrMsg is sent when branches could not be listed.
type RefreshErrMsg struct {
	Err error
}

// CheckoutDoneMsg is sent when a checkout attempt finished.
type CheckoutDoneMsg struct {
	Branch string
	Err    error
}

const (
	defaultWidth  = 100
	defaultHeight = 24

	// title, help and padding lines around the panes
	chromeHeight = 5
)

// Model is the BubbleTea model for the branch picker.
type Model struct {
	ctrl      *action.Controller
	refresher *action.Refresher
	detail    *detailPane
	keys      keyMap
	help      help.Model

	repoDir   string
	listWidth int
	width     int
	height    int

	loading  bool
	status   string
	err      error
	quitting bool
}

// NewModel creates a new TUI model.
func NewModel(cfg model.Config, refresher *action.Refresher, repoDir string) Model {
	list := selection.New()

	m := Model{
		ctrl:      action.New(list),
		refresher: refresher,
		keys:      defaultKeyMap(),
		help:      help.New(),
		repoDir:   repoDir,
		listWidth: cfg.ListWidth,
		width:     defaultWidth,
		height:    defaultHeight,
		loading:   true,
	}
	m.detail = newDetailPane(m.detailSize())
	list.OnFocusChange(m.detail.Show)
	return m
}

// Controller exposes the action controller, mainly for tests.
func (m Model) Controller() *action.Controller {
	return m.ctrl
}

func (m Model) detailSize() (int, int) {
	w := m.width - m.listWidth - 3
	h := m.height - chromeHeight
	return max(w, 10), max(h, 3)
}

func (m Model) Init() tea.Cmd {
	return refreshCmd(m.refresher)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.SetSize(m.detailSize())
		return m, nil

	case RefreshedMsg:
		m.loading = false
		m.status = ""
		m.err = nil
		m.ctrl.Apply(msg.Snapshot.Entries, msg.Snapshot.Current)
		return m, nil

	case RefreshErrMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil

	case CheckoutDoneMsg:
		if msg.Err != nil {
			m.ctrl.CheckoutFailed(msg.Err)
		} else {
			m.ctrl.CheckoutSucceeded()
		}
		m.status = "Refreshing..."
		return m, refreshCmd(m.refresher)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			list := m.ctrl.List()
			for i := 0; i < list.Len(); i++ {
				if zone.Get(ZoneID(i)).InBounds(msg) {
					list.SetFocus(i)
					break
				}
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.ctrl.HandleKey(msg.String()) {
		case action.ActionQuit:
			m.quitting = true
			return m, tea.Quit

		case action.ActionCheckout:
			if m.loading {
				return m, nil
			}
			name, ok := m.ctrl.Target()
			if !ok {
				return m, nil
			}
			m.loading = true
			m.status = fmt.Sprintf("Checking out %s...", name)
			return m, checkoutCmd(m.refresher, name)
		}
	}

	return m, nil
}

// ZoneID returns the bubblezone ID for the branch row at index.
func ZoneID(index int) string {
	return fmt.Sprintf("branch-%d", index)
}

func refreshCmd(r *action.Refresher) tea.Cmd {
	return func() tea.Msg {
		snap, err := r.Refresh(context.Background())
		if err != nil {
			return RefreshErrMsg{Err: err}
		}
		return RefreshedMsg{Snapshot: snap}
	}
}

func checkoutCmd(r *action.Refresher, name string) tea.Cmd {
	return func() tea.Msg {
		return CheckoutDoneMsg{Branch: name, Err: r.Checkout(name)}
	}
}
