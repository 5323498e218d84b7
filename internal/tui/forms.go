package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of labelled text inputs with one focused at a
// time. Enter on the last field (or ctrl+s anywhere) submits, esc cancels;
// the caller validates and acts on the values.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) form {
	f := form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 200
		in.Width = 40
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) setFocus(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

// update advances focus or edits the focused field. submitted/canceled are
// mutually exclusive; when both are false the form stays open.
func (f *form) update(msg tea.KeyMsg) (submitted, canceled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "ctrl+s":
		return true, false, nil
	case "enter":
		if f.focus == len(f.inputs)-1 {
			return true, false, nil
		}
		return false, false, f.setFocus(f.focus + 1)
	case "tab", "down":
		return false, false, f.setFocus((f.focus + 1) % len(f.inputs))
	case "shift+tab", "up":
		return false, false, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, false, cmd
}

func (f *form) view(title string) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(" " + title + " "))
	b.WriteString("\n\n")
	for i := range f.inputs {
		b.WriteString(styleLabel.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("enter/tab next • ctrl+s save • esc cancel"))
	return styleModal.Render(b.String())
}
