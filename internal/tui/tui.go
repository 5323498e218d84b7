// Package tui is the terminal front end: view routing, modal visibility and
// the in-memory copies of every collection live here. Collections are never
// patched locally; a mutation always triggers a full re-fetch of whatever it
// touched.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/scanner"
	"rentdesk/internal/service"
)

type view int

const (
	viewDashboard view = iota
	viewAssets
	viewCustomers
	viewRentals
	viewCreateRental
)

var viewNames = map[view]string{
	viewDashboard:    "Dashboard",
	viewAssets:       "Assets",
	viewCustomers:    "Customers",
	viewRentals:      "Rentals",
	viewCreateRental: "New Rental",
}

type modal int

const (
	modalNone modal = iota
	modalAssetDetail
	modalAssetForm
	modalCustomerForm
	modalPaymentForm
	modalPaymentHistory
	modalProductTypes
	modalSettings
	modalConfirm
)

// Model is the single application-state struct: current view, open modal,
// cached collections and the sub-state of every screen.
type Model struct {
	svcs *service.Services
	scan *scanner.Scanner

	width  int
	height int

	// Session-scoped admin flag; nothing is persisted about it.
	authed bool

	pendingLoads  int
	backupChecked bool

	view  view
	modal modal

	assets       []domain.Asset
	customers    []domain.Customer
	productTypes []string
	lastBackup   int64 // unix ms, 0 = never

	status    string
	statusErr bool
	statusSeq int

	login    loginState
	dash     dashboardState
	assetsUI assetsState
	custUI   customersState
	rentUI   rentalsState
	detail   detailState
	wizard   wizardState
	settings settingsState
	confirm  confirmState
}

// New builds the initial model over the given services.
func New(svcs *service.Services, scanGap time.Duration) *Model {
	m := &Model{
		svcs: svcs,
		scan: scanner.New(scanGap),
		view: viewDashboard,
	}
	m.login = newLoginState()
	m.dash = newDashboardState()
	m.assetsUI = newAssetsState()
	m.custUI = newCustomersState()
	m.rentUI = newRentalsState()
	return m
}

// Run starts the program.
func Run(svcs *service.Services, scanGap time.Duration) error {
	p := tea.NewProgram(New(svcs, scanGap), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init loads every collection in parallel; the auto-backup check runs once
// all of them have landed.
func (m *Model) Init() tea.Cmd {
	m.pendingLoads = 4
	return tea.Batch(
		loadAssetsCmd(m.svcs),
		loadCustomersCmd(m.svcs),
		loadProductTypesCmd(m.svcs),
		loadBackupInfoCmd(m.svcs),
		m.login.input.Focus(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeTables()
		return m, nil

	case assetsLoadedMsg:
		return m.applyLoad(func() {
			if msg.err == nil {
				m.assets = msg.assets
				m.rebuildAssetTables()
			}
		}, msg.err)

	case customersLoadedMsg:
		return m.applyLoad(func() {
			if msg.err == nil {
				m.customers = msg.customers
				m.rebuildCustomerTable()
				// Rental rows and the dashboard show customer names.
				m.rebuildRentalTable()
				m.rebuildDashboard()
			}
		}, msg.err)

	case productTypesLoadedMsg:
		return m.applyLoad(func() {
			if msg.err == nil {
				m.productTypes = msg.types
			}
		}, msg.err)

	case backupInfoMsg:
		return m.applyLoad(func() {
			if msg.err == nil {
				m.lastBackup = msg.record.Timestamp
			}
		}, msg.err)

	case autoBackupDoneMsg:
		if msg.err != nil {
			logger.Error("Automatic backup failed", "error", msg.err)
			return m, m.flashError(fmt.Sprintf("Automatic backup failed: %v", msg.err))
		}
		if msg.ran {
			return m, tea.Batch(loadBackupInfoCmd(m.svcs), m.flash("Automatic backup completed"))
		}
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			return m, m.flashError(msg.err.Error())
		}
		cmds := []tea.Cmd{}
		if msg.refresh.assets {
			cmds = append(cmds, loadAssetsCmd(m.svcs))
		}
		if msg.refresh.customers {
			cmds = append(cmds, loadCustomersCmd(m.svcs))
		}
		if msg.refresh.productTypes {
			cmds = append(cmds, loadProductTypesCmd(m.svcs))
		}
		if msg.refresh.backup {
			cmds = append(cmds, loadBackupInfoCmd(m.svcs))
		}
		if msg.status != "" {
			cmds = append(cmds, m.flash(msg.status))
		}
		return m, tea.Batch(cmds...)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case loginResultMsg, recoveryResultMsg:
		return m.updateLoginResult(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.authed {
			return m.updateLogin(msg)
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateView(msg)
	}

	return m, nil
}

// applyLoad folds one finished initial load into the model. The auto-backup
// check runs only once the last load has landed, never before.
func (m *Model) applyLoad(apply func(), err error) (tea.Model, tea.Cmd) {
	apply()
	var cmds []tea.Cmd
	if err != nil {
		cmds = append(cmds, m.flashError(fmt.Sprintf("Load failed: %v", err)))
	}
	if m.pendingLoads > 0 {
		m.pendingLoads--
		if m.pendingLoads == 0 && !m.backupChecked {
			m.backupChecked = true
			cmds = append(cmds, runAutoBackupCmd(m.svcs))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalAssetDetail:
		return m.updateDetail(msg)
	case modalAssetForm:
		return m.updateAssetForm(msg)
	case modalCustomerForm:
		return m.updateCustomerForm(msg)
	case modalPaymentForm:
		return m.updatePaymentForm(msg)
	case modalPaymentHistory:
		return m.updatePaymentHistory(msg)
	case modalProductTypes:
		return m.updateProductTypes(msg)
	case modalSettings:
		return m.updateSettings(msg)
	case modalConfirm:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// updateView handles keys when no modal is open. Printable keys also feed
// the barcode scanner; a burst of characters terminated by Enter within the
// gap is treated as a scan and dispatched to the asset detail view.
func (m *Model) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The rental wizard owns its keys entirely (it has focused inputs).
	if m.view == viewCreateRental {
		return m.updateWizard(msg)
	}

	now := time.Now()
	if msg.Type == tea.KeyRunes && !msg.Alt {
		for _, r := range msg.Runes {
			m.scan.Key(r, now)
		}
		// Mid-burst characters belong to a barcode, not to shortcuts.
		if m.scan.Pending() > 1 {
			return m, nil
		}
	}
	if msg.Type == tea.KeyEnter {
		if code, ok := m.scan.Enter(now); ok && len(code) > 1 {
			return m.dispatchScan(code)
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m.switchView(viewDashboard)
	case "2":
		return m.switchView(viewAssets)
	case "3":
		return m.switchView(viewCustomers)
	case "4":
		return m.switchView(viewRentals)
	case "5", "n":
		return m.switchView(viewCreateRental)
	case "s":
		return m.openSettings()
	case "ctrl+r":
		return m.confirmRestore()
	}

	switch m.view {
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewAssets:
		return m.updateAssets(msg)
	case viewCustomers:
		return m.updateCustomers(msg)
	case viewRentals:
		return m.updateRentals(msg)
	}
	return m, nil
}

// dispatchScan resolves a scanned code as an asset id.
func (m *Model) dispatchScan(code string) (tea.Model, tea.Cmd) {
	if a := m.assetByID(code); a != nil {
		return m.openDetail(a.ID)
	}
	return m, m.flashError(fmt.Sprintf("Asset with ID %q not found", code))
}

// confirmRestore rolls every collection back to the auto-backup snapshot,
// gated behind a confirm because it discards everything since.
func (m *Model) confirmRestore() (tea.Model, tea.Cmd) {
	if m.lastBackup == 0 {
		return m, m.flashError("No auto-backup has been taken yet")
	}
	taken := time.UnixMilli(m.lastBackup).Format("2006-01-02 15:04")
	return m.openConfirm(
		fmt.Sprintf("Restore all data from the auto-backup taken %s? Changes made since will be lost.", taken),
		mutate("Data restored from auto-backup",
			refreshSet{assets: true, customers: true, productTypes: true, backup: true},
			func(ctx context.Context) error {
				return m.svcs.Backup.RestoreAutoBackup(ctx)
			}),
	)
}

func (m *Model) switchView(v view) (tea.Model, tea.Cmd) {
	m.view = v
	m.scan.Reset()
	if v == viewCreateRental {
		m.wizard = newWizardState(m, "")
	}
	return m, nil
}

func (m *Model) assetByID(id string) *domain.Asset {
	for i := range m.assets {
		if m.assets[i].ID == id {
			return &m.assets[i]
		}
	}
	return nil
}

func (m *Model) customerName(id string) string {
	for i := range m.customers {
		if m.customers[i].ID == id {
			return m.customers[i].Name
		}
	}
	return id
}

// flash shows a transient status line for a few seconds.
func (m *Model) flash(text string) tea.Cmd {
	m.status = text
	m.statusErr = false
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m *Model) flashError(text string) tea.Cmd {
	cmd := m.flash(text)
	m.statusErr = true
	return cmd
}

func (m *Model) resizeTables() {
	h := m.height - 10
	if h < 4 {
		h = 4
	}
	m.dash.table.SetHeight(h)
	m.assetsUI.table.SetHeight(h)
	m.custUI.table.SetHeight(h)
	m.rentUI.table.SetHeight(h)
	m.wizard.resize(h)
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if !m.authed {
		return m.viewLogin()
	}

	header := m.viewHeader()

	var body string
	switch m.modal {
	case modalAssetDetail:
		body = m.viewDetail()
	case modalAssetForm:
		body = m.assetsUI.form.view("Asset")
	case modalCustomerForm:
		body = m.custUI.form.view("Customer")
	case modalPaymentForm:
		body = m.rentUI.payForm.view("Record Payment")
	case modalPaymentHistory:
		body = m.viewPaymentHistory()
	case modalProductTypes:
		body = m.viewProductTypes()
	case modalSettings:
		body = m.viewSettings()
	case modalConfirm:
		body = m.viewConfirm()
	default:
		switch m.view {
		case viewDashboard:
			body = m.viewDashboard()
		case viewAssets:
			body = m.viewAssets()
		case viewCustomers:
			body = m.viewCustomers()
		case viewRentals:
			body = m.viewRentals()
		case viewCreateRental:
			body = m.viewWizard()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.viewStatusBar())
}

func (m *Model) viewHeader() string {
	title := styleTitle.Render(" rentdesk ")
	tabs := ""
	for v := viewDashboard; v <= viewCreateRental; v++ {
		label := fmt.Sprintf("%d:%s", int(v)+1, viewNames[v])
		if v == m.view && m.modal == modalNone {
			tabs += styleTabActive.Render(label)
		} else {
			tabs += styleTab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, tabs)
}

func (m *Model) viewStatusBar() string {
	if m.status != "" {
		if m.statusErr {
			return styleError.Render(m.status)
		}
		return styleStatus.Render(m.status)
	}
	backup := "never"
	if m.lastBackup > 0 {
		backup = time.UnixMilli(m.lastBackup).Format("2006-01-02 15:04")
	}
	return styleHelp.Render(fmt.Sprintf("s settings • ctrl+r restore backup • q quit • last backup: %s", backup))
}
