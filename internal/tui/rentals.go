package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/billing"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

const (
	payFieldAmount = iota
	payFieldDate
	payFieldMode
)

// rentalRow pins a table row to the asset/rental pair it was built from.
type rentalRow struct {
	assetID  string
	assetNm  string
	rentalID string
	rental   domain.Rental
}

type rentalsState struct {
	table table.Model
	rows  []rentalRow

	payForm     form
	payAssetID  string
	payRentalID string
}

func newRentalsState() rentalsState {
	return rentalsState{
		table: newTable([]table.Column{
			{Title: "Asset", Width: 22},
			{Title: "Customer", Width: 18},
			{Title: "Out", Width: 11},
			{Title: "In", Width: 11},
			{Title: "Billed", Width: 10},
			{Title: "Paid", Width: 10},
			{Title: "Balance", Width: 12},
		}, 12),
	}
}

// rebuildRentalTable flattens every asset's rental history into one ledger,
// newest check-out first.
func (m *Model) rebuildRentalTable() {
	now := time.Now()
	rows := []rentalRow{}
	for i := range m.assets {
		a := &m.assets[i]
		for _, r := range a.RentalHistory {
			rows = append(rows, rentalRow{
				assetID:  a.ID,
				assetNm:  a.Name,
				rentalID: r.ID,
				rental:   r,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].rental.OutDate.After(rows[j].rental.OutDate)
	})

	trows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		r := row.rental
		in := "open"
		if r.InDate != nil {
			in = r.InDate.Format("2006-01-02")
		}
		trows = append(trows, table.Row{
			row.assetNm,
			m.customerName(r.CustomerID),
			r.OutDate.Format("2006-01-02"),
			in,
			money(billing.TotalBilled(&r, now)),
			money(billing.TotalPaid(&r)),
			balanceCell(billing.Balance(&r, now)),
		})
	}
	m.rentUI.table.SetRows(trows)
	m.rentUI.rows = rows
}

func (m *Model) selectedRentalRow() *rentalRow {
	s := &m.rentUI
	if len(s.rows) == 0 {
		return nil
	}
	return &s.rows[s.table.Cursor()]
}

func (m *Model) updateRentals(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if row := m.selectedRentalRow(); row != nil {
			m.modal = modalPaymentHistory
		}
		return m, nil
	case "p":
		if row := m.selectedRentalRow(); row != nil {
			return m.openPaymentForm(row.assetID, row.rentalID)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.rentUI.table, cmd = m.rentUI.table.Update(msg)
	return m, cmd
}

func (m *Model) openPaymentForm(assetID, rentalID string) (tea.Model, tea.Cmd) {
	s := &m.rentUI
	s.payForm = newForm("Amount", "Date (YYYY-MM-DD)", "Mode (Cash/Credit Card/Bank Transfer/Other)")
	s.payForm.setValue(payFieldDate, time.Now().Format("2006-01-02"))
	s.payForm.setValue(payFieldMode, string(domain.PaymentModeCash))
	s.payAssetID = assetID
	s.payRentalID = rentalID
	m.modal = modalPaymentForm
	return m, nil
}

func (m *Model) updatePaymentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.rentUI
	submitted, canceled, cmd := s.payForm.update(msg)
	if canceled {
		m.modal = modalNone
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	amount, err := strconv.ParseFloat(s.payForm.value(payFieldAmount), 64)
	if err != nil {
		return m, m.flashError("amount must be a number")
	}
	date, err := time.Parse("2006-01-02", s.payForm.value(payFieldDate))
	if err != nil {
		return m, m.flashError("invalid date: use YYYY-MM-DD")
	}
	mode, err := parsePaymentMode(s.payForm.value(payFieldMode))
	if err != nil {
		return m, m.flashError(err.Error())
	}

	params := service.AddPaymentParams{
		AssetID:  s.payAssetID,
		RentalID: s.payRentalID,
		Amount:   amount,
		Date:     date,
		Mode:     mode,
	}
	m.modal = modalNone
	return m, mutate("Payment recorded", refreshSet{assets: true}, func(ctx context.Context) error {
		return m.svcs.Rentals.AddPayment(ctx, params)
	})
}

func parsePaymentMode(v string) (domain.PaymentMode, error) {
	for _, mode := range []domain.PaymentMode{
		domain.PaymentModeCash,
		domain.PaymentModeCreditCard,
		domain.PaymentModeBankTransfer,
		domain.PaymentModeOther,
	} {
		if strings.EqualFold(v, string(mode)) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("mode must be one of Cash, Credit Card, Bank Transfer, Other")
}

func (m *Model) viewRentals() string {
	help := styleHelp.Render("enter payment history • p record payment • 1-5 tabs")
	return lipgloss.JoinVertical(lipgloss.Left, m.rentUI.table.View(), help)
}

func (m *Model) updatePaymentHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.modal = modalNone
	case "p":
		if row := m.selectedRentalRow(); row != nil {
			return m.openPaymentForm(row.assetID, row.rentalID)
		}
	}
	return m, nil
}

func (m *Model) viewPaymentHistory() string {
	row := m.selectedRentalRow()
	if row == nil {
		return styleModal.Render("No rental selected.")
	}
	r := row.rental
	now := time.Now()

	var b strings.Builder
	b.WriteString(styleTitle.Render(" Payment History "))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s rented by %s\n", row.assetNm, m.customerName(r.CustomerID)))
	b.WriteString(styleLabel.Render(fmt.Sprintf("Billed %s • Paid %s • Balance ",
		money(billing.TotalBilled(&r, now)), money(billing.TotalPaid(&r)))))
	b.WriteString(balanceCell(billing.Balance(&r, now)))
	b.WriteString("\n\n")

	if len(r.Payments) == 0 {
		b.WriteString(styleHelp.Render("No payments recorded."))
	}
	for _, p := range r.Payments {
		b.WriteString(fmt.Sprintf("%s  %-10s %s\n",
			p.Date.Format("2006-01-02"), money(p.Amount), p.Mode))
	}
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("p record payment • esc close"))
	return styleModal.Render(b.String())
}
