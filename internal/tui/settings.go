package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/service"
)

const (
	setFieldCurrent = iota
	setFieldNewPassword
	setFieldConfirm
	setFieldQuestion
	setFieldAnswer
)

// settingsState edits the password and recovery pair. Blank fields keep the
// stored values; only the current password is always required.
type settingsState struct {
	form form
}

func (m *Model) openSettings() (tea.Model, tea.Cmd) {
	m.settings.form = newForm(
		"Current Password",
		"New Password (blank = keep)",
		"Confirm New Password",
		"Security Question (blank = keep)",
		"Security Answer",
	)
	m.modal = modalSettings
	return m, nil
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.settings
	submitted, canceled, cmd := s.form.update(msg)
	if canceled {
		m.modal = modalNone
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	current := s.form.value(setFieldCurrent)
	if current == "" {
		return m, m.flashError("current password is required")
	}
	newPass := s.form.value(setFieldNewPassword)
	if newPass != s.form.value(setFieldConfirm) {
		return m, m.flashError("new password and confirmation do not match")
	}

	params := service.UpdateSecurityParams{
		CurrentPassword: current,
		NewPassword:     newPass,
	}
	question := s.form.value(setFieldQuestion)
	answer := s.form.value(setFieldAnswer)
	if question != "" || answer != "" {
		params.Question = &question
		params.Answer = &answer
	}

	m.modal = modalNone
	return m, mutate("Settings updated", refreshSet{}, func(ctx context.Context) error {
		return m.svcs.Security.UpdateSettings(ctx, params)
	})
}

func (m *Model) viewSettings() string {
	return m.settings.form.view("Security Settings")
}
