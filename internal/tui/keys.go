package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mikanfactory/jopen/internal/action"
)

// keyMap describes the bindings shown in the help line. Dispatch itself
// goes through action.Controller.HandleKey.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Checkout key.Binding
	Overlay  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys(action.KeyPrevious, action.KeyUp),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(action.KeyNext, action.KeyDown),
			key.WithHelp("↓/j", "down"),
		),
		Checkout: key.NewBinding(
			key.WithKeys(action.KeyActivate),
			key.WithHelp("enter", "checkout"),
		),
		Overlay: key.NewBinding(
			key.WithKeys(action.KeyToggleOverlay),
			key.WithHelp("e", "toggle error"),
		),
		Quit: key.NewBinding(
			key.WithKeys(action.KeyQuit, action.KeyQuitUpper, action.KeyInterrupt),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Checkout, k.Overlay, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up},
		{k.Checkout, k.Overlay, k.Quit},
	}
}
