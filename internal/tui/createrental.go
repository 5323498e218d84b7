package tui

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/domain"
	"rentdesk/internal/service"
)

type wizardStep int

const (
	wizardPickAsset wizardStep = iota
	wizardPickCustomer
	wizardDetails
)

const (
	wizFieldRate = iota
	wizFieldCycle
	wizFieldOutDate
	wizFieldAgreement
)

// wizardState walks a check-out through asset, customer and terms. The rate
// and cycle default from the asset but are editable per rental.
type wizardState struct {
	ready bool
	step  wizardStep

	assetTable table.Model
	assetIDs   []string
	custTable  table.Model
	custIDs    []string

	assetID    string
	customerID string
	form       form
}

func newWizardState(m *Model, preselect string) wizardState {
	w := wizardState{
		ready: true,
		assetTable: newTable([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 14},
			{Title: "Rate", Width: 12},
		}, 10),
		custTable: newTable([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Name", Width: 22},
			{Title: "Phone", Width: 14},
		}, 10),
	}

	var assetRows []table.Row
	for i := range m.assets {
		a := &m.assets[i]
		if a.Status != domain.AssetStatusAvailable {
			continue
		}
		w.assetIDs = append(w.assetIDs, a.ID)
		assetRows = append(assetRows, table.Row{
			a.ID, a.Name, a.ProductType, fmt.Sprintf("%s/%s", money(a.Rate), a.BillingCycle),
		})
	}
	w.assetTable.SetRows(assetRows)

	var custRows []table.Row
	for i := range m.customers {
		c := &m.customers[i]
		w.custIDs = append(w.custIDs, c.ID)
		custRows = append(custRows, table.Row{c.ID, c.Name, c.Phone})
	}
	w.custTable.SetRows(custRows)

	if preselect != "" {
		w.assetID = preselect
		w.step = wizardPickCustomer
	}
	return w
}

func (w *wizardState) resize(h int) {
	if !w.ready {
		return
	}
	w.assetTable.SetHeight(h)
	w.custTable.SetHeight(h)
}

// startDetails seeds the terms form from the chosen asset.
func (w *wizardState) startDetails(m *Model) tea.Cmd {
	w.form = newForm("Rate", "Billing Cycle (day/month)", "Out Date (YYYY-MM-DD)", "Agreement scan (file path, optional)")
	if a := m.assetByID(w.assetID); a != nil {
		w.form.setValue(wizFieldRate, strconv.FormatFloat(a.Rate, 'f', -1, 64))
		w.form.setValue(wizFieldCycle, string(a.BillingCycle))
	}
	w.form.setValue(wizFieldOutDate, time.Now().Format("2006-01-02"))
	w.step = wizardDetails
	return nil
}

func (m *Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := &m.wizard

	if w.step != wizardDetails {
		switch msg.String() {
		case "esc":
			return m.switchView(viewDashboard)
		case "enter":
			if w.step == wizardPickAsset {
				if len(w.assetIDs) == 0 {
					return m, m.flashError("No assets are available to rent")
				}
				w.assetID = w.assetIDs[w.assetTable.Cursor()]
				w.step = wizardPickCustomer
				return m, nil
			}
			if len(w.custIDs) == 0 {
				return m, m.flashError("No customers on file; add one first")
			}
			w.customerID = w.custIDs[w.custTable.Cursor()]
			return m, w.startDetails(m)
		}
		var cmd tea.Cmd
		if w.step == wizardPickAsset {
			w.assetTable, cmd = w.assetTable.Update(msg)
		} else {
			w.custTable, cmd = w.custTable.Update(msg)
		}
		return m, cmd
	}

	submitted, canceled, cmd := w.form.update(msg)
	if canceled {
		w.step = wizardPickCustomer
		return m, nil
	}
	if !submitted {
		return m, cmd
	}
	return m.submitWizard()
}

func (m *Model) submitWizard() (tea.Model, tea.Cmd) {
	w := &m.wizard

	rate, err := strconv.ParseFloat(w.form.value(wizFieldRate), 64)
	if err != nil || rate < 0 {
		return m, m.flashError("rate must be a non-negative number")
	}

	var cycle domain.BillingCycle
	switch strings.ToLower(w.form.value(wizFieldCycle)) {
	case string(domain.BillingCycleDay), "":
		cycle = domain.BillingCycleDay
	case string(domain.BillingCycleMonth):
		cycle = domain.BillingCycleMonth
	default:
		return m, m.flashError("billing cycle must be day or month")
	}

	outDate, err := time.Parse("2006-01-02", w.form.value(wizFieldOutDate))
	if err != nil {
		return m, m.flashError("invalid out date: use YYYY-MM-DD")
	}

	agreement := ""
	if path := w.form.value(wizFieldAgreement); path != "" {
		agreement, err = encodeAgreement(path)
		if err != nil {
			return m, m.flashError(err.Error())
		}
	}

	params := service.RentAssetParams{
		AssetID:       w.assetID,
		CustomerID:    w.customerID,
		Rate:          rate,
		BillingCycle:  cycle,
		OutDate:       outDate,
		AgreementCopy: agreement,
	}

	m.view = viewDashboard
	return m, mutate("Rental created", refreshSet{assets: true}, func(ctx context.Context) error {
		return m.svcs.Rentals.RentAsset(ctx, params)
	})
}

// encodeAgreement inlines a scanned agreement file as a data URL so the
// record survives export/import without a sidecar file.
func encodeAgreement(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read agreement file: %w", err)
	}
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (m *Model) viewWizard() string {
	w := &m.wizard
	switch w.step {
	case wizardPickAsset:
		help := styleHelp.Render("enter select asset • esc cancel")
		return lipgloss.JoinVertical(lipgloss.Left,
			styleLabel.Render("Step 1 of 3: choose an available asset"), w.assetTable.View(), help)
	case wizardPickCustomer:
		asset := w.assetID
		if a := m.assetByID(w.assetID); a != nil {
			asset = a.Name
		}
		help := styleHelp.Render("enter select customer • esc cancel")
		return lipgloss.JoinVertical(lipgloss.Left,
			styleLabel.Render(fmt.Sprintf("Step 2 of 3: choose a customer for %s", asset)),
			w.custTable.View(), help)
	default:
		return w.form.view("Step 3 of 3: rental terms")
	}
}
