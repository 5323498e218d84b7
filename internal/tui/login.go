package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginState gates the whole application behind the admin password, with a
// ctrl+r recovery path that reveals the stored password after the security
// answer matches.
type loginState struct {
	input    textinput.Model
	recovery bool
	question string
	answer   textinput.Model
	revealed string
	errText  string
}

func newLoginState() loginState {
	in := textinput.New()
	in.Placeholder = "Password"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Width = 30

	ans := textinput.New()
	ans.Placeholder = "Answer"
	ans.Width = 30

	return loginState{input: in, answer: ans}
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.login

	if s.recovery {
		switch msg.String() {
		case "esc":
			s.recovery = false
			s.revealed = ""
			s.errText = ""
			return m, s.input.Focus()
		case "enter":
			if s.revealed != "" {
				// Answer already matched; enter goes back to the prompt.
				s.recovery = false
				s.revealed = ""
				return m, s.input.Focus()
			}
			return m, recoverPasswordCmd(m.svcs, s.answer.Value())
		}
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+r":
		return m, fetchQuestionCmd(m.svcs)
	case "enter":
		candidate := s.input.Value()
		s.input.SetValue("")
		return m, verifyPasswordCmd(m.svcs, candidate)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return m, cmd
}

func (m *Model) updateLoginResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &m.login
	switch msg := msg.(type) {
	case loginResultMsg:
		if msg.err != nil {
			s.errText = msg.err.Error()
			return m, nil
		}
		if !msg.ok {
			s.errText = "Incorrect password"
			return m, nil
		}
		m.authed = true
		s.errText = ""
		return m, nil
	case recoveryResultMsg:
		if msg.err != nil {
			s.errText = msg.err.Error()
			s.recovery = false
			return m, nil
		}
		if msg.question != "" {
			s.recovery = true
			s.question = msg.question
			s.errText = ""
			s.answer.SetValue("")
			s.input.Blur()
			return m, s.answer.Focus()
		}
		s.revealed = msg.password
		return m, nil
	}
	return m, nil
}

func (m *Model) viewLogin() string {
	s := &m.login
	var b strings.Builder
	b.WriteString(styleTitle.Render(" rentdesk "))
	b.WriteString("\n\n")

	if s.recovery {
		if s.revealed != "" {
			b.WriteString(styleStatus.Render(fmt.Sprintf("Your password is: %s", s.revealed)))
			b.WriteString("\n\n")
			b.WriteString(styleHelp.Render("enter to return to login"))
		} else {
			b.WriteString(styleLabel.Render(s.question))
			b.WriteString("\n")
			b.WriteString(s.answer.View())
			b.WriteString("\n\n")
			b.WriteString(styleHelp.Render("enter submit • esc back"))
		}
	} else {
		b.WriteString(styleLabel.Render("Enter admin password"))
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		b.WriteString(styleHelp.Render("enter unlock • ctrl+r forgot password • ctrl+c quit"))
	}

	if s.errText != "" {
		b.WriteString("\n\n")
		b.WriteString(styleError.Render(s.errText))
	}

	box := styleModal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
