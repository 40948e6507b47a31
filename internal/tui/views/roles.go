// Package views provides TUI view components for the intervu application.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/intervu-dev/intervu/internal/tui"
)

// RoleChosenMsg is sent when the user picks a role to interview for.
type RoleChosenMsg struct {
	Role tui.Role
}

// roleItem adapts a tui.Role to the bubbles list item interface.
type roleItem struct {
	role tui.Role
}

func (i roleItem) Title() string {
	if i.role.Difficulty == "" {
		return i.role.Title
	}
	return fmt.Sprintf("%s (%s)", i.role.Title, i.role.Difficulty)
}

func (i roleItem) Description() string { return i.role.Description }
func (i roleItem) FilterValue() string { return i.role.Title }

// RolesModel is the view model for the role selection screen.
type RolesModel struct {
	list   list.Model
	width  int
	height int
}

// NewRolesModel creates a RolesModel listing the given roles.
func NewRolesModel(roles []tui.Role, width, height int) RolesModel {
	items := make([]list.Item, len(roles))
	for i, r := range roles {
		items[i] = roleItem{role: r}
	}

	l := list.New(items, list.NewDefaultDelegate(), width-8, height-10)
	l.Title = "Choose Your Interview Role"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return RolesModel{
		list:   l,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the roles view.
func (m RolesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the roles view.
func (m RolesModel) Update(msg tea.Msg) (RolesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			if item, ok := m.list.SelectedItem().(roleItem); ok {
				return m, func() tea.Msg {
					return RoleChosenMsg{Role: item.role}
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-8, msg.Height-10)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the roles view.
func (m RolesModel) View() string {
	var b strings.Builder

	b.WriteString(m.list.View())
	b.WriteString("\n\n")

	footer := tui.DimStyle.Render("Enter: Start interview · Up/Down: Navigate · Ctrl+C: Exit")
	b.WriteString(footer)

	content := b.String()
	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(content)

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}
