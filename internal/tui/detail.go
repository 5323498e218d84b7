package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"rentdesk/internal/billing"
	"rentdesk/internal/domain"
)

// detailState points at one asset; the view re-reads the cached collection
// every render so a refresh after a mutation shows through immediately.
type detailState struct {
	assetID string
}

func (m *Model) openDetail(assetID string) (tea.Model, tea.Cmd) {
	m.detail.assetID = assetID
	m.modal = modalAssetDetail
	return m, nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.assetByID(m.detail.assetID)
	if a == nil {
		m.modal = modalNone
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.modal = modalNone
		return m, nil
	case "e":
		return m.openAssetForm(a)
	case "r":
		open := a.OpenRental()
		if open == nil {
			m.view = viewCreateRental
			m.modal = modalNone
			m.wizard = newWizardState(m, a.ID)
			return m, nil
		}
		return m.confirmReturn(a, open)
	case "p":
		if open := a.OpenRental(); open != nil {
			return m.openPaymentForm(a.ID, open.ID)
		}
		return m, m.flashError("Asset has no open rental")
	}
	return m, nil
}

// confirmReturn checks the asset in; an outstanding balance only warns, it
// never blocks the return.
func (m *Model) confirmReturn(a *domain.Asset, open *domain.Rental) (tea.Model, tea.Cmd) {
	balance := billing.Balance(open, time.Now())
	prompt := fmt.Sprintf("Return %s?", a.Name)
	if balance > 0 {
		prompt = fmt.Sprintf("Return %s with an outstanding balance of %s?", a.Name, money(balance))
	}
	id := a.ID
	return m.openConfirm(prompt, mutate("Asset returned", refreshSet{assets: true}, func(ctx context.Context) error {
		return m.svcs.Rentals.ReturnAsset(ctx, id)
	}))
}

func (m *Model) viewDetail() string {
	a := m.assetByID(m.detail.assetID)
	if a == nil {
		return styleModal.Render("Asset not found.")
	}
	now := time.Now()

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf(" %s ", a.Name)))
	b.WriteString("\n\n")

	line := func(label, value string) {
		if value != "" {
			b.WriteString(styleLabel.Render(label+": ") + value + "\n")
		}
	}
	line("ID", a.ID)
	line("Type", a.ProductType)
	line("Make", a.Make)
	line("Model", a.Model)
	line("Serial", a.SerialNumber)
	if !a.PurchaseDate.IsZero() {
		line("Purchased", a.PurchaseDate.Format("2006-01-02"))
	}
	line("Rate", fmt.Sprintf("%s per %s", money(a.Rate), a.BillingCycle))
	line("Status", string(a.Status))

	if open := a.OpenRental(); open != nil {
		b.WriteString("\n")
		b.WriteString(styleLabel.Render("Rented to: ") + m.customerName(open.CustomerID) + "\n")
		b.WriteString(styleLabel.Render("Out since: ") + open.OutDate.Format("2006-01-02") + "\n")
		b.WriteString(styleLabel.Render("Billed: ") + money(billing.TotalBilled(open, now)) + "\n")
		b.WriteString(styleLabel.Render("Paid: ") + money(billing.TotalPaid(open)) + "\n")
		b.WriteString(styleLabel.Render("Balance: ") + balanceCell(billing.Balance(open, now)) + "\n")
		b.WriteString("\n")
		b.WriteString(styleHelp.Render("r return • p payment • e edit • esc close"))
	} else {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d past rental(s)\n", len(a.RentalHistory)))
		b.WriteString("\n")
		b.WriteString(styleHelp.Render("r rent out • e edit • esc close"))
	}
	return styleModal.Render(b.String())
}

// confirmState holds a yes/no prompt and the command to run on yes.
type confirmState struct {
	prompt string
	onYes  tea.Cmd
}

func (m *Model) openConfirm(prompt string, onYes tea.Cmd) (tea.Model, tea.Cmd) {
	m.confirm = confirmState{prompt: prompt, onYes: onYes}
	m.modal = modalConfirm
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		cmd := m.confirm.onYes
		m.confirm = confirmState{}
		m.modal = modalNone
		return m, cmd
	case "n", "esc":
		m.confirm = confirmState{}
		m.modal = modalNone
	}
	return m, nil
}

func (m *Model) viewConfirm() string {
	var b strings.Builder
	b.WriteString(m.confirm.prompt)
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("y confirm • n cancel"))
	return styleModal.Render(b.String())
}
