package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skylog/internal/adapters/tui/styles"
	"skylog/internal/domain"
)

// SquadronKeyMap defines key bindings for the squadron view
type SquadronKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Annotate key.Binding
}

var SquadronKeys = SquadronKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "down"),
	),
	Annotate: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit annotations"),
	),
}

// SquadronModel shows the primary squadron roster and recent activity.
type SquadronModel struct {
	ViewState

	squadron *domain.Squadron
	cursor   int
}

// NewSquadronModel creates a new squadron view
func NewSquadronModel() *SquadronModel {
	return &SquadronModel{}
}

// SetModel swaps in a freshly synced campaign model.
func (m *SquadronModel) SetModel(model *domain.CampaignModel) {
	m.squadron = model.PrimarySquadron()
	m.cursor = 0
}

func (m *SquadronModel) Init() tea.Cmd {
	return nil
}

func (m *SquadronModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.squadron != nil {
		switch {
		case key.Matches(msg, SquadronKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, SquadronKeys.Down):
			if m.cursor < len(m.squadron.Roster)-1 {
				m.cursor++
			}
		case key.Matches(msg, SquadronKeys.Annotate):
			if m.cursor < len(m.squadron.Roster) {
				pilot := m.squadron.Roster[m.cursor]
				if pilot.Serial != 0 {
					return m, func() tea.Msg { return AnnotateRequestMsg{Pilot: pilot} }
				}
				m.SetMessage("pilot has no serial number, cannot annotate", true)
			}
		}
	}
	return m, nil
}

func (m *SquadronModel) View() string {
	var b strings.Builder

	if m.squadron == nil || len(m.squadron.Roster) == 0 {
		b.WriteString(styles.Title.Render("Squadron"))
		b.WriteString("\n\n")
		b.WriteString(styles.Subtitle.Render("No roster resolved for this campaign."))
		return styles.App.Render(b.String())
	}

	title := m.squadron.Name
	if title == "" {
		title = fmt.Sprintf("Squadron %d", m.squadron.ID)
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	victories, losses := rosterTotals(m.squadron.Roster)
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d pilots, %d victories, %d lost",
		len(m.squadron.Roster), victories, losses)))
	b.WriteString("\n\n")

	for i, pilot := range m.squadron.Roster {
		status := pilot.Status.String()
		line := fmt.Sprintf("%-10s %-26s %3d sorties %3d victories  %s",
			pilot.Rank, pilot.Name, pilot.Stats.Sorties, pilot.Stats.Victories, status)
		switch {
		case i == m.cursor:
			line = styles.RowSelected.Render(line)
		case pilot.Status.Lost():
			line = styles.RowLost.Render(line)
		default:
			line = lipgloss.NewStyle().Render(line)
		}
		b.WriteString(line)
		if pilot.Annotation != nil {
			b.WriteString(styles.RowMuted.Render("  +"))
		}
		b.WriteString("\n")
	}

	if len(m.squadron.Activity) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InputLabel.Render("Recent activity"))
		b.WriteString("\n")
		activity := m.squadron.Activity
		if len(activity) > 5 {
			activity = activity[len(activity)-5:]
		}
		for _, entry := range activity {
			b.WriteString(styles.RowMuted.Render("  " + domain.FormatDate(entry.Date) + "  " + entry.Text))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("e"))
	b.WriteString(styles.HelpDesc.Render(" annotate selected pilot"))
	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(m.Message))
	}
	return styles.App.Render(b.String())
}

func rosterTotals(roster []domain.Pilot) (victories, losses int) {
	for i := range roster {
		victories += roster[i].Stats.Victories
		if roster[i].Status.Lost() {
			losses++
		}
	}
	return victories, losses
}
