package domain

import (
	"slices"
	"strings"
	"time"
)

// CombatReport is the tracked pilot's debrief for one mission. Reports only
// exist under the reference pilot's serial-numbered folder; that is a
// limitation of the source layout, not of this model.
type CombatReport struct {
	Serial       int64 // serial of the containing folder
	PilotName    string
	Squadron     string
	Date         time.Time
	Time         string
	Aircraft     string
	Duty         string
	Locality     string
	Altitude     string
	HAReport     string
	Narrative    string
	FlightPilots []string
	Claims       []VictoryClaim
	Source       string
	Partial      bool
}

// VictoryClaim is one claimed kill from a combat report.
type VictoryClaim struct {
	Category string // "aircraft", "balloon", "ground"; "aircraft" when unstated
	Aircraft string
}

// MissionPilot is a participant extracted from missionPlanes.
type MissionPilot struct {
	Name       string
	Serial     int64
	SquadronID int64
}

// MissionRecord is one mission from the MissionData files, enriched by the
// resolver with its combat report and weather snapshot where available.
type MissionRecord struct {
	Date         time.Time
	Time         string
	Squadron     string
	SquadronID   int64
	Aircraft     string
	Duty         string
	Airfield     string
	Altitude     *int // metres; nil when the header omits it
	Description  string
	Participants []MissionPilot
	Squadmates   []string

	Report  *CombatReport    // nil when no report matched
	Weather *WeatherSnapshot // nil when no .mission file matched

	Source  string
	Partial bool
}

// Weather field names extracted from .mission files.
const (
	WeatherTime        = "Time"
	WeatherDate        = "Date"
	WeatherCloudLevel  = "CloudLevel"
	WeatherCloudHeight = "CloudHeight"
	WeatherTemperature = "Temperature"
	WeatherPressure    = "Pressure"
	WeatherHaze        = "Haze"
	WeatherWindLayers  = "WindLayers"
	WeatherLayerFog    = "LayerFog"
)

// WeatherKeys lists every field the mission text parser knows about.
var WeatherKeys = []string{
	WeatherTime,
	WeatherDate,
	WeatherCloudLevel,
	WeatherCloudHeight,
	WeatherTemperature,
	WeatherPressure,
	WeatherHaze,
	WeatherWindLayers,
	WeatherLayerFog,
}

// WeatherSnapshot holds the key/value pairs found in a matched .mission
// file. Keys that were not present in the file are absent from Fields,
// never defaulted.
type WeatherSnapshot struct {
	Source string
	Fields map[string]string
}

// Get returns a field value and whether it was present in the source file.
func (w *WeatherSnapshot) Get(key string) (string, bool) {
	if w == nil || w.Fields == nil {
		return "", false
	}
	v, ok := w.Fields[key]
	return v, ok
}

// TimeOfDay returns the mission start time when the file carried one.
func (w *WeatherSnapshot) TimeOfDay() (string, bool) {
	return w.Get(WeatherTime)
}

// SortMissions orders missions chronologically, ties broken by time-of-day
// then source path so the order is stable across runs.
func SortMissions(missions []MissionRecord) {
	slices.SortStableFunc(missions, func(a, b MissionRecord) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := strings.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return strings.Compare(a.Source, b.Source)
	})
}
