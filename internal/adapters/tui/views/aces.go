package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/tui/styles"
	"skylog/internal/domain"
)

// AcesKeyMap defines key bindings for the aces leaderboard
type AcesKeyMap struct {
	Up   key.Binding
	Down key.Binding
}

var AcesKeys = AcesKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "down"),
	),
}

// AcesModel is the victory leaderboard.
type AcesModel struct {
	ViewState

	aces   []domain.Ace
	serial int64 // tracked pilot, highlighted in the table
	cursor int
}

// NewAcesModel creates a new aces view
func NewAcesModel() *AcesModel {
	return &AcesModel{}
}

// SetModel swaps in a freshly synced campaign model.
func (m *AcesModel) SetModel(model *domain.CampaignModel) {
	m.aces = model.Aces
	m.serial = model.Pilot.Serial
	m.cursor = 0
}

func (m *AcesModel) Init() tea.Cmd {
	return nil
}

func (m *AcesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, AcesKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, AcesKeys.Down):
			if m.cursor < len(m.aces)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *AcesModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Aces"))
	b.WriteString("\n\n")

	if len(m.aces) == 0 {
		b.WriteString(styles.Subtitle.Render("No aces recorded for this campaign."))
		return styles.App.Render(b.String())
	}

	visible := m.aces
	if max := m.Height - 8; max > 0 && len(visible) > max {
		start := m.cursor - max/2
		if start < 0 {
			start = 0
		}
		if start+max > len(visible) {
			start = len(visible) - max
		}
		visible = visible[start : start+max]
	}

	for _, ace := range visible {
		line := fmt.Sprintf("%3d. %-28s %-22s %3d", ace.Position, ace.Name, ace.Squadron, ace.Victories)
		switch {
		case ace.Position-1 == m.cursor:
			line = styles.RowSelected.Render(line)
		case ace.Serial != 0 && ace.Serial == m.serial:
			line = styles.Achievement.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return styles.App.Render(b.String())
}
