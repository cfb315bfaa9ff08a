package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/tui/styles"
)

// PickerKeyMap defines key bindings for the campaign picker
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open campaign"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PickerModel lists the campaigns found under the PWCG root.
type PickerModel struct {
	ViewState

	campaigns []string
	cursor    int
	syncing   bool
	spinner   spinner.Model
}

// NewPickerModel creates a new campaign picker
func NewPickerModel(campaigns []string) *PickerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &PickerModel{campaigns: campaigns, spinner: sp}
}

func (m *PickerModel) Init() tea.Cmd {
	return nil
}

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.syncing {
			return m, nil
		}
		switch {
		case key.Matches(msg, PickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, PickerKeys.Down):
			if m.cursor < len(m.campaigns)-1 {
				m.cursor++
			}
		case key.Matches(msg, PickerKeys.Select):
			if len(m.campaigns) == 0 {
				return m, nil
			}
			m.syncing = true
			chosen := m.campaigns[m.cursor]
			return m, tea.Batch(
				m.spinner.Tick,
				func() tea.Msg { return CampaignChosenMsg{Campaign: chosen} },
			)
		case key.Matches(msg, PickerKeys.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

// SyncFinished clears the in-flight indicator after a sync settles.
func (m *PickerModel) SyncFinished() {
	m.syncing = false
}

func (m *PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("skylog"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("PWCG campaign logbooks"))
	b.WriteString("\n\n")

	if len(m.campaigns) == 0 {
		b.WriteString(styles.WarningMsg.Render("No campaigns found under the PWCG root."))
		b.WriteString("\n")
		b.WriteString(styles.HelpDesc.Render("Set SKYLOG_PWCG_ROOT to your campaign directory."))
		return styles.App.Render(b.String())
	}

	for i, campaign := range m.campaigns {
		line := "  " + campaign
		if i == m.cursor {
			line = styles.RowSelected.Render("> " + campaign)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.syncing {
		b.WriteString(m.spinner.View())
		b.WriteString(styles.HelpDesc.Render(" syncing..."))
	} else {
		b.WriteString(styles.HelpKey.Render("enter"))
		b.WriteString(styles.HelpDesc.Render(" open  "))
		b.WriteString(styles.HelpKey.Render("q"))
		b.WriteString(styles.HelpDesc.Render(" quit"))
	}
	if m.Message != "" {
		b.WriteString("\n\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}
	return styles.App.Render(b.String())
}
