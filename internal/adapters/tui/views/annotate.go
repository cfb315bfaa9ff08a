package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/tui/styles"
	"skylog/internal/domain"
	"skylog/internal/ports"
)

// AnnotateKeyMap defines key bindings for the annotation form
type AnnotateKeyMap struct {
	Next   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var AnnotateKeys = AnnotateKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const (
	fieldBirthDate = iota
	fieldBirthPlace
	fieldNotes
	fieldPhotoPath
	fieldCount
)

// AnnotateModel is the form for a pilot's personal metadata. It writes
// directly to the annotation store; the app re-syncs afterwards so the
// merged model picks the record up.
type AnnotateModel struct {
	ViewState

	store  ports.AnnotationStore
	pilot  domain.Pilot
	inputs [fieldCount]textinput.Model
	focus  int
}

// NewAnnotateModel creates a new annotation form
func NewAnnotateModel(store ports.AnnotationStore) *AnnotateModel {
	m := &AnnotateModel{store: store}
	labels := [fieldCount]string{"DD/MM/YYYY", "Town, region", "Free-form notes", "Path to portrait"}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.CharLimit = 200
		m.inputs[i] = input
	}
	return m
}

// SetPilot loads the form with the pilot's stored annotation, if any.
func (m *AnnotateModel) SetPilot(pilot domain.Pilot) {
	m.pilot = pilot
	m.ClearMessage()

	record := pilot.Annotation
	if record == nil && m.store != nil {
		record, _ = m.store.Get(pilot.Serial)
	}
	values := [fieldCount]string{}
	if record != nil {
		values = [fieldCount]string{record.BirthDate, record.BirthPlace, record.Notes, record.PhotoPath}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = fieldBirthDate
	m.inputs[m.focus].Focus()
}

func (m *AnnotateModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AnnotateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, AnnotateKeys.Cancel):
			return m, func() tea.Msg { return AnnotateCancelMsg{} }

		case key.Matches(msg, AnnotateKeys.Next):
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % fieldCount
			m.inputs[m.focus].Focus()
			return m, nil

		case key.Matches(msg, AnnotateKeys.Submit):
			return m, m.save()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AnnotateModel) save() tea.Cmd {
	birthDate := strings.TrimSpace(m.inputs[fieldBirthDate].Value())
	if birthDate != "" {
		if _, err := domain.ParseDate(birthDate); err != nil {
			m.SetMessage("birth date: "+err.Error(), true)
			return nil
		}
	}
	record := &domain.AnnotationRecord{
		Serial:     m.pilot.Serial,
		BirthDate:  birthDate,
		BirthPlace: strings.TrimSpace(m.inputs[fieldBirthPlace].Value()),
		Notes:      strings.TrimSpace(m.inputs[fieldNotes].Value()),
		PhotoPath:  strings.TrimSpace(m.inputs[fieldPhotoPath].Value()),
	}
	if err := m.store.Put(record); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	serial := m.pilot.Serial
	return func() tea.Msg { return AnnotateSavedMsg{Serial: serial} }
}

func (m *AnnotateModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(fmt.Sprintf("Annotate %s", m.pilot.Name)))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("serial %d", m.pilot.Serial)))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Birth date", "Birthplace", "Notes", "Photo"}
	for i := range m.inputs {
		b.WriteString(styles.InputLabel.Render(labels[i]))
		b.WriteString("\n")
		field := styles.InputField
		if i == m.focus {
			field = styles.InputFocused
		}
		b.WriteString(field.Render(m.inputs[i].View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter"))
	b.WriteString(styles.HelpDesc.Render(" save  "))
	b.WriteString(styles.HelpKey.Render("tab"))
	b.WriteString(styles.HelpDesc.Render(" next field  "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" cancel"))

	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorMsg.Render(m.Message))
	}
	return styles.App.Render(b.String())
}
