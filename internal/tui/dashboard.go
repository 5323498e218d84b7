package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/billing"
	"rentdesk/internal/domain"
)

// dashboardState shows fleet totals and the assets currently out, with a
// live billing estimate per open rental.
type dashboardState struct {
	table  table.Model
	rowIDs []string // asset id per row
}

func newDashboardState() dashboardState {
	return dashboardState{
		table: newTable([]table.Column{
			{Title: "Asset", Width: 24},
			{Title: "Customer", Width: 20},
			{Title: "Out Since", Width: 12},
			{Title: "Billed", Width: 10},
			{Title: "Paid", Width: 10},
			{Title: "Balance", Width: 12},
		}, 12),
	}
}

func (m *Model) rebuildDashboard() {
	now := time.Now()
	rows := []table.Row{}
	ids := []string{}
	for i := range m.assets {
		a := &m.assets[i]
		r := a.OpenRental()
		if r == nil {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%s (%s)", a.Name, a.ID),
			m.customerName(r.CustomerID),
			r.OutDate.Format("2006-01-02"),
			money(billing.TotalBilled(r, now)),
			money(billing.TotalPaid(r)),
			balanceCell(billing.Balance(r, now)),
		})
		ids = append(ids, a.ID)
	}
	m.dash.table.SetRows(rows)
	m.dash.rowIDs = ids
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && len(m.dash.rowIDs) > 0 {
		return m.openDetail(m.dash.rowIDs[m.dash.table.Cursor()])
	}
	var cmd tea.Cmd
	m.dash.table, cmd = m.dash.table.Update(msg)
	return m, cmd
}

func (m *Model) viewDashboard() string {
	total := len(m.assets)
	rented := 0
	for i := range m.assets {
		if m.assets[i].Status == domain.AssetStatusRented {
			rented++
		}
	}

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		styleStatBox.Render(fmt.Sprintf("Assets\n%d", total)),
		styleStatBox.Render(fmt.Sprintf("Rented\n%d", rented)),
		styleStatBox.Render(fmt.Sprintf("Available\n%d", total-rented)),
		styleStatBox.Render(fmt.Sprintf("Customers\n%d", len(m.customers))),
	)

	body := m.dash.table.View()
	if len(m.dash.rowIDs) == 0 {
		body = styleHelp.Render("No assets are currently rented out.")
	}

	help := styleHelp.Render("enter asset detail • scan a barcode any time")
	return lipgloss.JoinVertical(lipgloss.Left, stats, body, help)
}
