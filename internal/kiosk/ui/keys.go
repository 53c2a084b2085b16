package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Enroll  key.Binding
	Confirm key.Binding
	Back    key.Binding
	Retry   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Enroll:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "enroll")),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
