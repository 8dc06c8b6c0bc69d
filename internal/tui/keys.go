package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	Next       key.Binding
	Back       key.Binding
	Pick       key.Binding
	AcceptHint key.Binding
	NextTab    key.Binding
	Professor  key.Binding
	Aluno      key.Binding
	History    key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "próximo campo")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "campo anterior")),
		Next:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "próximo")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "voltar")),
		Pick:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "foto")),
		AcceptHint: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "aceitar sugestão")),
		NextTab:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "trocar aba")),
		Professor:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "professor")),
		Aluno:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "aluno")),
		History:    key.NewBinding(key.WithKeys("f3", "ctrl+r"), key.WithHelp("f3", "histórico")),
		Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "limpar")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "sair")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Next, k.Back, k.NextTab, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Next, k.Back},
		{k.Pick, k.AcceptHint},
		{k.NextTab, k.Professor, k.Aluno, k.History, k.Quit},
	}
}

// historyHelp is the footer while the history view is open.
type historyHelp keyMap

func (k historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Clear, k.Quit}
}

func (k historyHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
