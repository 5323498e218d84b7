package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

// Collection load results. Every mutation is followed by a full re-fetch of
// the affected collection(s), so the in-memory state always mirrors the
// store right after a write.

type assetsLoadedMsg struct {
	assets []domain.Asset
	err    error
}

type customersLoadedMsg struct {
	customers []domain.Customer
	err       error
}

type productTypesLoadedMsg struct {
	types []string
	err   error
}

type backupInfoMsg struct {
	record *domain.AutoBackupRecord
	err    error
}

type autoBackupDoneMsg struct {
	ran bool
	err error
}

// mutationDoneMsg reports a completed write along with which collections to
// re-fetch. A nil err with a non-empty status flashes the status line.
type mutationDoneMsg struct {
	status  string
	err     error
	refresh refreshSet
}

type refreshSet struct {
	assets       bool
	customers    bool
	productTypes bool
	backup       bool
}

type loginResultMsg struct {
	ok  bool
	err error
}

type recoveryResultMsg struct {
	question string // set when fetching the question
	password string // set when the answer matched
	err      error
}

type statusExpiredMsg struct{ seq int }

func loadAssetsCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		assets, err := svcs.Assets.List(context.Background())
		return assetsLoadedMsg{assets: assets, err: err}
	}
}

func loadCustomersCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		customers, err := svcs.Customers.List(context.Background())
		return customersLoadedMsg{customers: customers, err: err}
	}
}

func loadProductTypesCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		types, err := svcs.ProductTypes.List(context.Background())
		return productTypesLoadedMsg{types: types, err: err}
	}
}

func loadBackupInfoCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		record, err := svcs.Backup.GetAutoBackup(context.Background())
		return backupInfoMsg{record: record, err: err}
	}
}

func runAutoBackupCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		ran, err := svcs.Backup.RunAutoBackupIfDue(context.Background(), time.Now())
		return autoBackupDoneMsg{ran: ran, err: err}
	}
}

func verifyPasswordCmd(svcs *service.Services, candidate string) tea.Cmd {
	return func() tea.Msg {
		ok, err := svcs.Security.VerifyPassword(context.Background(), candidate)
		return loginResultMsg{ok: ok, err: err}
	}
}

func fetchQuestionCmd(svcs *service.Services) tea.Cmd {
	return func() tea.Msg {
		settings, err := svcs.Security.GetSettings(context.Background())
		if err != nil {
			return recoveryResultMsg{err: err}
		}
		if settings.Question == "" {
			return recoveryResultMsg{err: domain.ErrNoRecoveryQuestion}
		}
		return recoveryResultMsg{question: settings.Question}
	}
}

func recoverPasswordCmd(svcs *service.Services, answer string) tea.Cmd {
	return func() tea.Msg {
		password, err := svcs.Security.RecoverPassword(context.Background(), answer)
		return recoveryResultMsg{password: password, err: err}
	}
}

// mutate runs a write operation and reports which collections it dirtied.
func mutate(status string, refresh refreshSet, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := op(context.Background())
		return mutationDoneMsg{status: status, err: err, refresh: refresh}
	}
}
