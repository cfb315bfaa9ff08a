package tui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"skylog/internal/adapters/diary"
	"skylog/internal/adapters/tui/styles"
	"skylog/internal/adapters/tui/views"
	"skylog/internal/application"
	"skylog/internal/domain"
	"skylog/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPicker ViewState = iota
	ViewTabs
	ViewAnnotate
	ViewHelp
)

// Tab indexes the campaign tabs in display order.
type Tab int

const (
	TabPilot Tab = iota
	TabAces
	TabSquadron
	TabMissions
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabAces:
		return "Aces"
	case TabSquadron:
		return "Squadron"
	case TabMissions:
		return "Missions"
	default:
		return "Pilot"
	}
}

// App is the main TUI application model
type App struct {
	syncer *application.Syncer
	store  ports.AnnotationStore

	state    ViewState
	tab      Tab
	campaign string
	model    *domain.CampaignModel

	picker   *views.PickerModel
	pilot    *views.PilotModel
	aces     *views.AcesModel
	squadron *views.SquadronModel
	missions *views.MissionsModel
	annotate *views.AnnotateModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(syncer *application.Syncer, store ports.AnnotationStore) *App {
	campaigns, _ := syncer.Campaigns()
	return &App{
		syncer:   syncer,
		store:    store,
		state:    ViewPicker,
		picker:   views.NewPickerModel(campaigns),
		pilot:    views.NewPilotModel(),
		aces:     views.NewAcesModel(),
		squadron: views.NewSquadronModel(),
		missions: views.NewMissionsModel(),
		annotate: views.NewAnnotateModel(store),
		help:     views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.picker.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, v := range []interface{ SetSize(int, int) }{
			a.picker, a.pilot, a.aces, a.squadron, a.missions, a.annotate, a.help,
		} {
			v.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case views.CampaignChosenMsg:
		a.campaign = msg.Campaign
		return a, a.syncCmd(msg.Campaign)

	case views.SyncDoneMsg:
		a.picker.SyncFinished()
		unlocked := newlyUnlocked(a.model, msg.Model)
		a.model = msg.Model
		a.pilot.SetModel(msg.Model)
		a.aces.SetModel(msg.Model)
		a.squadron.SetModel(msg.Model)
		a.missions.SetModel(msg.Model)
		a.state = ViewTabs
		if unlocked != "" {
			a.pilot.SetMessage("Unlocked: "+unlocked, false)
		} else if n := warningCount(msg.Diagnostics); n > 0 {
			a.pilot.SetMessage(fmt.Sprintf("synced with %d warnings", n), false)
		} else {
			a.pilot.ClearMessage()
		}
		return a, nil

	case views.SyncFailedMsg:
		a.picker.SyncFinished()
		a.state = ViewPicker
		a.picker.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.AnnotateRequestMsg:
		a.state = ViewAnnotate
		a.annotate.SetPilot(msg.Pilot)
		return a, a.annotate.Init()

	case views.AnnotateSavedMsg:
		// Re-sync so the merged model picks the new record up.
		a.state = ViewTabs
		return a, a.syncCmd(a.campaign)

	case views.AnnotateCancelMsg:
		a.state = ViewTabs
		return a, nil

	case views.BackToPickerMsg:
		a.state = ViewPicker
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}
	}

	return a, a.delegate(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if a.state == ViewAnnotate {
		// The form owns every key while open.
		return nil, false
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "q":
		if a.state == ViewTabs {
			return tea.Quit, true
		}
	case "?":
		if a.state == ViewTabs {
			a.state = ViewHelp
			return nil, true
		}
	case "esc":
		if a.state == ViewTabs {
			a.state = ViewPicker
			return nil, true
		}
	case "tab":
		if a.state == ViewTabs {
			a.tab = (a.tab + 1) % tabCount
			return nil, true
		}
	case "1", "2", "3", "4":
		if a.state == ViewTabs {
			a.tab = Tab(int(msg.String()[0] - '1'))
			return nil, true
		}
	case "s":
		if a.state == ViewTabs && a.campaign != "" {
			return a.syncCmd(a.campaign), true
		}
	case "d":
		if a.state == ViewTabs && a.model != nil {
			if err := clipboard.WriteAll(diary.Export(a.model)); err != nil {
				a.pilot.SetMessage("clipboard: "+err.Error(), true)
			} else {
				a.pilot.SetMessage("diary copied to clipboard", false)
			}
			return nil, true
		}
	}
	return nil, false
}

func (a *App) delegate(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewAnnotate:
		_, cmd = a.annotate.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		switch a.tab {
		case TabAces:
			_, cmd = a.aces.Update(msg)
		case TabSquadron:
			_, cmd = a.squadron.Update(msg)
		case TabMissions:
			_, cmd = a.missions.Update(msg)
		default:
			_, cmd = a.pilot.Update(msg)
		}
	}
	return cmd
}

func (a *App) syncCmd(campaign string) tea.Cmd {
	return func() tea.Msg {
		model, diags, err := a.syncer.Sync(context.Background(), campaign, nil)
		if err != nil {
			return views.SyncFailedMsg{Err: err}
		}
		return views.SyncDoneMsg{Model: model, Diagnostics: diags}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewAnnotate:
		return a.annotate.View()
	case ViewHelp:
		return a.help.View()
	case ViewTabs:
		return a.tabBar() + "\n" + a.tabView()
	default:
		return a.picker.View()
	}
}

func (a *App) tabBar() string {
	bar := ""
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf(" %d %s ", int(t)+1, t)
		if t == a.tab {
			bar += styles.TabActive.Render(label)
		} else {
			bar += styles.TabInactive.Render(label)
		}
	}
	return bar
}

func (a *App) tabView() string {
	switch a.tab {
	case TabAces:
		return a.aces.View()
	case TabSquadron:
		return a.squadron.View()
	case TabMissions:
		return a.missions.View()
	default:
		return a.pilot.View()
	}
}

// newlyUnlocked names the achievements present in next but not in prev.
func newlyUnlocked(prev, next *domain.CampaignModel) string {
	if next == nil {
		return ""
	}
	was := map[string]bool{}
	if prev != nil {
		for _, achievement := range prev.Achievements {
			if achievement.Unlocked {
				was[achievement.ID] = true
			}
		}
	}
	names := ""
	for _, achievement := range next.Achievements {
		if achievement.Unlocked && prev != nil && !was[achievement.ID] {
			if names != "" {
				names += ", "
			}
			names += achievement.Title
		}
	}
	return names
}

func warningCount(diags []domain.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity != domain.SeverityInfo {
			n++
		}
	}
	return n
}
