package application

import (
	"time"

	"skylog/internal/domain"
)

// RecordSet collects everything the loaders produced for one campaign
// before cross-reference resolution. Slices may be empty when the source
// category was absent; Campaign is nil only when the header file was.
type RecordSet struct {
	FileSet  *domain.FileSet
	Campaign *domain.Campaign
	Aces     []domain.AceEntry
	Log      []domain.LogEntry
	Reports  []domain.CombatReport
	Missions []domain.MissionRecord
	Roster   []domain.RosterEntry
}

// WeatherLookup resolves a weather snapshot for one mission. nil, nil
// means no candidate file matched, which is a valid outcome.
type WeatherLookup func(pilotName string, date time.Time) (*domain.WeatherSnapshot, error)

// Progress receives category-by-category notifications during a sync.
type Progress func(stage string)

// Sync stages reported through Progress, in pipeline order.
const (
	StageLocate  = "locate"
	StageHeader  = "campaign"
	StageRecords = "records"
	StageRoster  = "roster"
	StageResolve = "resolve"
	StageStats   = "statistics"
	StageMerge   = "annotations"
	StageDone    = "done"
)
