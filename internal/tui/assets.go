package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/domain"
)

// Field order of the asset form; submit parses by index.
const (
	assetFieldName = iota
	assetFieldProductType
	assetFieldMake
	assetFieldModel
	assetFieldSerial
	assetFieldPurchaseDate
	assetFieldRate
	assetFieldCycle
)

type assetsState struct {
	table  table.Model
	rowIDs []string

	form      form
	editingID string // empty = adding

	ptInput  textinput.Model
	ptCursor int
}

func newAssetsState() assetsState {
	in := textinput.New()
	in.Placeholder = "New product type"
	in.Width = 30

	return assetsState{
		table: newTable([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 14},
			{Title: "Rate", Width: 12},
			{Title: "Status", Width: 10},
		}, 12),
		ptInput: in,
	}
}

// rebuildAssetTables refreshes every table derived from the asset list.
func (m *Model) rebuildAssetTables() {
	rows := make([]table.Row, 0, len(m.assets))
	ids := make([]string, 0, len(m.assets))
	for i := range m.assets {
		a := &m.assets[i]
		rows = append(rows, table.Row{
			a.ID,
			a.Name,
			a.ProductType,
			fmt.Sprintf("%s/%s", money(a.Rate), a.BillingCycle),
			string(a.Status),
		})
		ids = append(ids, a.ID)
	}
	m.assetsUI.table.SetRows(rows)
	m.assetsUI.rowIDs = ids

	m.rebuildDashboard()
	m.rebuildRentalTable()
}

func (m *Model) selectedAsset() *domain.Asset {
	s := &m.assetsUI
	if len(s.rowIDs) == 0 {
		return nil
	}
	return m.assetByID(s.rowIDs[s.table.Cursor()])
}

func (m *Model) updateAssets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a := m.selectedAsset(); a != nil {
			return m.openDetail(a.ID)
		}
		return m, nil
	case "a":
		return m.openAssetForm(nil)
	case "e":
		if a := m.selectedAsset(); a != nil {
			return m.openAssetForm(a)
		}
		return m, nil
	case "x":
		if a := m.selectedAsset(); a != nil {
			if a.Status == domain.AssetStatusRented {
				return m, m.flashError("Cannot delete an asset that is rented out")
			}
			id := a.ID
			return m.openConfirm(
				fmt.Sprintf("Delete asset %s (%s)?", a.Name, a.ID),
				mutate("Asset deleted", refreshSet{assets: true}, func(ctx context.Context) error {
					return m.svcs.Assets.Delete(ctx, id)
				}),
			)
		}
		return m, nil
	case "t":
		m.modal = modalProductTypes
		m.assetsUI.ptCursor = 0
		m.assetsUI.ptInput.SetValue("")
		return m, m.assetsUI.ptInput.Focus()
	case "r":
		if a := m.selectedAsset(); a != nil {
			if a.Status == domain.AssetStatusRented {
				return m, m.flashError("Asset is already rented out")
			}
			m.view = viewCreateRental
			m.wizard = newWizardState(m, a.ID)
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.assetsUI.table, cmd = m.assetsUI.table.Update(msg)
	return m, cmd
}

func (m *Model) openAssetForm(a *domain.Asset) (tea.Model, tea.Cmd) {
	s := &m.assetsUI
	s.form = newForm(
		"Name", "Product Type", "Make", "Model", "Serial Number",
		"Purchase Date (YYYY-MM-DD)", "Rate", "Billing Cycle (day/month)",
	)
	s.form.setValue(assetFieldCycle, string(domain.BillingCycleDay))
	if a != nil {
		s.editingID = a.ID
		s.form.setValue(assetFieldName, a.Name)
		s.form.setValue(assetFieldProductType, a.ProductType)
		s.form.setValue(assetFieldMake, a.Make)
		s.form.setValue(assetFieldModel, a.Model)
		s.form.setValue(assetFieldSerial, a.SerialNumber)
		if !a.PurchaseDate.IsZero() {
			s.form.setValue(assetFieldPurchaseDate, a.PurchaseDate.Format("2006-01-02"))
		}
		s.form.setValue(assetFieldRate, strconv.FormatFloat(a.Rate, 'f', -1, 64))
		s.form.setValue(assetFieldCycle, string(a.BillingCycle))
	} else {
		s.editingID = ""
	}
	m.modal = modalAssetForm
	return m, nil
}

func (m *Model) updateAssetForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.assetsUI
	submitted, canceled, cmd := s.form.update(msg)
	if canceled {
		m.modal = modalNone
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	asset, err := s.parseAssetForm()
	if err != nil {
		return m, m.flashError(err.Error())
	}

	m.modal = modalNone
	if s.editingID == "" {
		return m, mutate("Asset added", refreshSet{assets: true}, func(ctx context.Context) error {
			_, err := m.svcs.Assets.Add(ctx, *asset)
			return err
		})
	}

	// Edits never touch the rental side of the record.
	existing := m.assetByID(s.editingID)
	if existing != nil {
		asset.ID = existing.ID
		asset.Status = existing.Status
		asset.Photos = existing.Photos
		asset.RentalHistory = existing.RentalHistory
	}
	return m, mutate("Asset updated", refreshSet{assets: true}, func(ctx context.Context) error {
		_, err := m.svcs.Assets.Update(ctx, *asset)
		return err
	})
}

func (s *assetsState) parseAssetForm() (*domain.Asset, error) {
	a := &domain.Asset{
		Name:         s.form.value(assetFieldName),
		ProductType:  s.form.value(assetFieldProductType),
		Make:         s.form.value(assetFieldMake),
		Model:        s.form.value(assetFieldModel),
		SerialNumber: s.form.value(assetFieldSerial),
	}
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if a.ProductType == "" {
		return nil, fmt.Errorf("product type is required")
	}

	if v := s.form.value(assetFieldPurchaseDate); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, fmt.Errorf("invalid purchase date: use YYYY-MM-DD")
		}
		a.PurchaseDate = d
	}

	rate, err := strconv.ParseFloat(s.form.value(assetFieldRate), 64)
	if err != nil || rate < 0 {
		return nil, fmt.Errorf("rate must be a non-negative number")
	}
	a.Rate = rate

	switch strings.ToLower(s.form.value(assetFieldCycle)) {
	case string(domain.BillingCycleDay), "":
		a.BillingCycle = domain.BillingCycleDay
	case string(domain.BillingCycleMonth):
		a.BillingCycle = domain.BillingCycleMonth
	default:
		return nil, fmt.Errorf("billing cycle must be day or month")
	}
	return a, nil
}

func (m *Model) viewAssets() string {
	help := styleHelp.Render("enter detail • a add • e edit • x delete • t types • r rent • 1-5 tabs")
	return lipgloss.JoinVertical(lipgloss.Left, m.assetsUI.table.View(), help)
}

// Product types modal: a flat list plus an input to append to it.

func (m *Model) updateProductTypes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.assetsUI
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		s.ptInput.Blur()
		return m, nil
	case "up", "ctrl+p":
		if s.ptCursor > 0 {
			s.ptCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if s.ptCursor < len(m.productTypes)-1 {
			s.ptCursor++
		}
		return m, nil
	case "enter":
		name := strings.TrimSpace(s.ptInput.Value())
		s.ptInput.SetValue("")
		return m, mutate("Product type added", refreshSet{productTypes: true}, func(ctx context.Context) error {
			_, err := m.svcs.ProductTypes.Add(ctx, name)
			return err
		})
	case "ctrl+x":
		if s.ptCursor < len(m.productTypes) {
			name := m.productTypes[s.ptCursor]
			return m, mutate("Product type deleted", refreshSet{productTypes: true}, func(ctx context.Context) error {
				_, err := m.svcs.ProductTypes.Delete(ctx, name)
				return err
			})
		}
		return m, nil
	}
	var cmd tea.Cmd
	s.ptInput, cmd = s.ptInput.Update(msg)
	return m, cmd
}

func (m *Model) viewProductTypes() string {
	s := &m.assetsUI
	var b strings.Builder
	b.WriteString(styleTitle.Render(" Product Types "))
	b.WriteString("\n\n")
	for i, name := range m.productTypes {
		cursor := "  "
		if i == s.ptCursor {
			cursor = "> "
		}
		b.WriteString(cursor + name + "\n")
	}
	b.WriteString("\n")
	b.WriteString(s.ptInput.View())
	b.WriteString("\n\n")
	b.WriteString(styleHelp.Render("enter add • ctrl+x delete selected • esc close"))
	return styleModal.Render(b.String())
}
