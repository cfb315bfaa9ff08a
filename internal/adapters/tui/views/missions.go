package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/tui/styles"
	"skylog/internal/domain"
)

// MissionsKeyMap defines key bindings for the mission log
type MissionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

var MissionsKeys = MissionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "toggle detail"),
	),
}

// MissionsModel lists missions chronologically with an expandable detail
// pane for the selected one.
type MissionsModel struct {
	ViewState

	missions []domain.MissionRecord
	cursor   int
	expanded bool
}

// NewMissionsModel creates a new mission log view
func NewMissionsModel() *MissionsModel {
	return &MissionsModel{}
}

// SetModel swaps in a freshly synced campaign model.
func (m *MissionsModel) SetModel(model *domain.CampaignModel) {
	m.missions = model.Missions
	m.cursor = 0
	m.expanded = false
}

func (m *MissionsModel) Init() tea.Cmd {
	return nil
}

func (m *MissionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, MissionsKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, MissionsKeys.Down):
			if m.cursor < len(m.missions)-1 {
				m.cursor++
			}
		case key.Matches(msg, MissionsKeys.Toggle):
			m.expanded = !m.expanded
		}
	}
	return m, nil
}

func (m *MissionsModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Mission log"))
	b.WriteString("\n\n")

	if len(m.missions) == 0 {
		b.WriteString(styles.Subtitle.Render("No missions recorded for this campaign."))
		return styles.App.Render(b.String())
	}

	for i := range m.missions {
		mission := &m.missions[i]
		marks := ""
		if mission.Report != nil {
			marks += " R"
		}
		if mission.Weather != nil {
			marks += " W"
		}
		if mission.Partial {
			marks += " ?"
		}
		line := fmt.Sprintf("%s  %-5s %-24s%s",
			domain.FormatDate(mission.Date), mission.Time, mission.Duty, marks)
		if i == m.cursor {
			line = styles.RowSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if i == m.cursor && m.expanded {
			b.WriteString(m.detail(mission))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" toggle detail   "))
	b.WriteString(styles.RowMuted.Render("R debrief  W weather  ? partial record"))
	return styles.App.Render(b.String())
}

func (m *MissionsModel) detail(mission *domain.MissionRecord) string {
	var b strings.Builder
	indent := "      "

	if mission.Airfield != "" {
		b.WriteString(indent + styles.CardLabel.Render("Airfield  ") + mission.Airfield + "\n")
	}
	if mission.Aircraft != "" {
		b.WriteString(indent + styles.CardLabel.Render("Aircraft  ") + mission.Aircraft + "\n")
	}
	if mission.Altitude != nil {
		b.WriteString(indent + styles.CardLabel.Render("Altitude  ") + fmt.Sprintf("%dm", *mission.Altitude) + "\n")
	}
	if mission.Description != "" {
		b.WriteString(indent + styles.RowMuted.Render(truncate(mission.Description, 100)) + "\n")
	}

	if report := mission.Report; report != nil {
		if report.Narrative != "" {
			b.WriteString(indent + truncate(strings.TrimSpace(report.Narrative), 200) + "\n")
		}
		for _, claim := range report.Claims {
			target := claim.Aircraft
			if target == "" {
				target = claim.Category
			}
			b.WriteString(indent + styles.Success.Render("claimed "+target) + "\n")
		}
	}

	if weather := mission.Weather; weather != nil {
		var parts []string
		for _, k := range domain.WeatherKeys {
			if v, ok := weather.Get(k); ok {
				parts = append(parts, k+"="+v)
			}
		}
		b.WriteString(indent + styles.RowMuted.Render(strings.Join(parts, "  ")) + "\n")
	}
	if len(mission.Squadmates) > 0 {
		b.WriteString(indent + styles.CardLabel.Render("With      ") + strings.Join(mission.Squadmates, ", ") + "\n")
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
