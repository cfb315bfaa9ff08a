package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skylog/internal/adapters/tui/styles"
	"skylog/internal/domain"
)

// PilotKeyMap defines key bindings for the pilot view
type PilotKeyMap struct {
	Annotate key.Binding
}

var PilotKeys = PilotKeyMap{
	Annotate: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit annotations"),
	),
}

// PilotModel shows the tracked pilot's card: stats, annotations and
// achievements.
type PilotModel struct {
	ViewState

	model *domain.CampaignModel
}

// NewPilotModel creates a new pilot view
func NewPilotModel() *PilotModel {
	return &PilotModel{}
}

// SetModel swaps in a freshly synced campaign model.
func (m *PilotModel) SetModel(model *domain.CampaignModel) {
	m.model = model
}

func (m *PilotModel) Init() tea.Cmd {
	return nil
}

func (m *PilotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.model != nil {
		if key.Matches(msg, PilotKeys.Annotate) {
			pilot := m.model.Pilot
			return m, func() tea.Msg { return AnnotateRequestMsg{Pilot: pilot} }
		}
	}
	return m, nil
}

func (m *PilotModel) View() string {
	if m.model == nil {
		return styles.App.Render(styles.Subtitle.Render("No campaign loaded."))
	}
	pilot := m.model.Pilot

	var b strings.Builder
	name := strings.TrimSpace(pilot.Rank + " " + pilot.Name)
	b.WriteString(styles.Title.Render(name))
	b.WriteString("\n")
	if pilot.Squadron != "" {
		b.WriteString(styles.Subtitle.Render(pilot.Squadron))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(cardLine("Serial", fmt.Sprintf("%d", pilot.Serial)))
	b.WriteString(cardLine("Status", lipgloss.NewStyle().
		Foreground(styles.StatusColor(pilot.Status.String())).
		Render(pilot.Status.String())))
	if date := domain.FormatDate(m.model.Campaign.Date); date != "" {
		b.WriteString(cardLine("Campaign date", date))
	}
	b.WriteString("\n")

	stats := pilot.Stats
	b.WriteString(cardLine("Sorties", fmt.Sprintf("%d", stats.Sorties)))
	b.WriteString(cardLine("Victories", fmt.Sprintf("%d", stats.Victories)))
	b.WriteString(cardLine("Ratio", fmt.Sprintf("%.2f", stats.Ratio)))
	for _, category := range sortedCategories(stats.VictoriesByCategory) {
		b.WriteString(cardLine("  "+category, fmt.Sprintf("%d", stats.VictoriesByCategory[category])))
	}
	b.WriteString("\n")

	if a := pilot.Annotation; a != nil {
		if a.BirthDate != "" {
			value := a.BirthDate
			if age, ok := a.Age(m.model.Campaign.Date); ok {
				value = fmt.Sprintf("%s (age %d)", a.BirthDate, age)
			}
			b.WriteString(cardLine("Born", value))
		}
		if a.BirthPlace != "" {
			b.WriteString(cardLine("Birthplace", a.BirthPlace))
		}
		if a.Notes != "" {
			b.WriteString(cardLine("Notes", a.Notes))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("Distinctions"))
	b.WriteString("\n")
	for _, achievement := range m.model.Achievements {
		if achievement.Unlocked {
			b.WriteString("  " + styles.Achievement.Render("* "+achievement.Title))
		} else {
			b.WriteString("  " + styles.AchievementLocked.Render("  "+achievement.Title))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("e"))
	b.WriteString(styles.HelpDesc.Render(" edit annotations"))
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

func cardLine(label, value string) string {
	return styles.CardLabel.Render(padRight(label, 16)) + styles.CardValue.Render(value) + "\n"
}

func sortedCategories(byCategory map[string]int) []string {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
