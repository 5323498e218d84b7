package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rentdesk/internal/domain"
)

const (
	custFieldName = iota
	custFieldEmail
	custFieldPhone
	custFieldPhone2
	custFieldAadhar
	custFieldAddress
)

type customersState struct {
	table  table.Model
	rowIDs []string

	form      form
	editingID string
}

func newCustomersState() customersState {
	return customersState{
		table: newTable([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 26},
			{Title: "Phone", Width: 14},
		}, 12),
	}
}

func (m *Model) rebuildCustomerTable() {
	rows := make([]table.Row, 0, len(m.customers))
	ids := make([]string, 0, len(m.customers))
	for i := range m.customers {
		c := &m.customers[i]
		rows = append(rows, table.Row{c.ID, c.Name, c.Email, c.Phone})
		ids = append(ids, c.ID)
	}
	m.custUI.table.SetRows(rows)
	m.custUI.rowIDs = ids
}

func (m *Model) selectedCustomer() *domain.Customer {
	s := &m.custUI
	if len(s.rowIDs) == 0 {
		return nil
	}
	id := s.rowIDs[s.table.Cursor()]
	for i := range m.customers {
		if m.customers[i].ID == id {
			return &m.customers[i]
		}
	}
	return nil
}

func (m *Model) updateCustomers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		return m.openCustomerForm(nil)
	case "e":
		if c := m.selectedCustomer(); c != nil {
			return m.openCustomerForm(c)
		}
		return m, nil
	case "x":
		if c := m.selectedCustomer(); c != nil {
			id := c.ID
			return m.openConfirm(
				fmt.Sprintf("Delete customer %s (%s)?", c.Name, c.ID),
				mutate("Customer deleted", refreshSet{customers: true}, func(ctx context.Context) error {
					// A customer on a rental record, past or open, stays.
					has, err := m.svcs.Customers.HasRentalHistory(ctx, id)
					if err != nil {
						return err
					}
					if has {
						return fmt.Errorf("customer has rental history and cannot be deleted")
					}
					return m.svcs.Customers.Delete(ctx, id)
				}),
			)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.custUI.table, cmd = m.custUI.table.Update(msg)
	return m, cmd
}

func (m *Model) openCustomerForm(c *domain.Customer) (tea.Model, tea.Cmd) {
	s := &m.custUI
	s.form = newForm("Name", "Email", "Phone", "Alternate Phone", "Aadhar", "Address")
	if c != nil {
		s.editingID = c.ID
		s.form.setValue(custFieldName, c.Name)
		s.form.setValue(custFieldEmail, c.Email)
		s.form.setValue(custFieldPhone, c.Phone)
		s.form.setValue(custFieldPhone2, c.Phone2)
		s.form.setValue(custFieldAadhar, c.Aadhar)
		s.form.setValue(custFieldAddress, c.Address)
	} else {
		s.editingID = ""
	}
	m.modal = modalCustomerForm
	return m, nil
}

func (m *Model) updateCustomerForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.custUI
	submitted, canceled, cmd := s.form.update(msg)
	if canceled {
		m.modal = modalNone
		return m, nil
	}
	if !submitted {
		return m, cmd
	}

	customer := domain.Customer{
		Name:    s.form.value(custFieldName),
		Email:   s.form.value(custFieldEmail),
		Phone:   s.form.value(custFieldPhone),
		Phone2:  s.form.value(custFieldPhone2),
		Aadhar:  s.form.value(custFieldAadhar),
		Address: s.form.value(custFieldAddress),
	}
	if customer.Name == "" {
		return m, m.flashError("name is required")
	}

	m.modal = modalNone
	if s.editingID == "" {
		return m, mutate("Customer added", refreshSet{customers: true}, func(ctx context.Context) error {
			_, err := m.svcs.Customers.Add(ctx, customer)
			return err
		})
	}
	customer.ID = s.editingID
	return m, mutate("Customer updated", refreshSet{customers: true}, func(ctx context.Context) error {
		_, err := m.svcs.Customers.Update(ctx, customer)
		return err
	})
}

func (m *Model) viewCustomers() string {
	help := styleHelp.Render("a add • e edit • x delete • 1-5 tabs")
	return lipgloss.JoinVertical(lipgloss.Left, m.custUI.table.View(), help)
}
