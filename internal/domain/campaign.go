package domain

import (
	"slices"
	"strings"
	"time"
)

// Campaign is the header record of one PWCG career. In PWCG the campaign
// name doubles as the tracked pilot's name.
type Campaign struct {
	Name            string
	Date            time.Time // current in-story date
	ReferenceSerial int64     // serial number of the tracked pilot
	SquadronID      int64     // 0 when the header does not carry it
	Product         string    // e.g. "BOS", "FC"; empty when absent
	Source          string
}

// PilotStatus mirrors the PWCG pilotActiveStatus codes.
type PilotStatus int

const (
	StatusActive PilotStatus = iota
	StatusOnLeave
	StatusWounded
	StatusHospital
	StatusMIA
	StatusKIA
	StatusTransferred
)

func (s PilotStatus) String() string {
	switch s {
	case StatusOnLeave:
		return "On leave"
	case StatusWounded:
		return "Wounded"
	case StatusHospital:
		return "Hospital"
	case StatusMIA:
		return "MIA"
	case StatusKIA:
		return "KIA"
	case StatusTransferred:
		return "Transferred"
	default:
		return "Active"
	}
}

// Lost reports whether the status counts as a squadron loss.
func (s PilotStatus) Lost() bool {
	return s == StatusMIA || s == StatusKIA
}

// Pilot is a resolved pilot identity. Serial is the only reliable key;
// names are not unique across a campaign.
type Pilot struct {
	Serial     int64
	Name       string
	Rank       string
	SquadronID int64
	Squadron   string
	Aircraft   string
	Status     PilotStatus
	Stats      PilotStats
	Annotation *AnnotationRecord // merged from the store, never written by a sync
}

// Squadron groups a roster and its recent activity.
type Squadron struct {
	ID       int64
	Name     string
	Roster   []Pilot
	Activity []LogEntry // chronological
}

// LogEntry is one line of the campaign log.
type LogEntry struct {
	Date       time.Time
	Text       string
	SquadronID int64
	Source     string
}

// AceEntry is a source record from the aces file, before ranking.
type AceEntry struct {
	Serial        int64 // 0 when the file omits it
	Name          string
	Rank          string
	Country       string
	Squadron      string
	SquadronID    int64
	Victories     int
	MissionsFlown int
	Source        string
	Partial       bool
}

// RosterEntry is a source record from a Personnel catalog.
type RosterEntry struct {
	Serial        int64
	Name          string
	Rank          string
	MissionsFlown int
	Victories     int
	Status        PilotStatus
	Source        string
	Partial       bool
}

// FileSet is the locator's view of one campaign directory. Empty string or
// empty map values mean "absent"; only the campaign directory itself is
// required to exist.
type FileSet struct {
	Root          string
	CampaignJSON  string
	AcesJSON      string
	LogJSON       string
	CombatReports map[int64][]string // pilot serial -> report files
	MissionData   []string
	Personnel     map[int64]string // squadron id -> catalog file
}

// SortLogEntries orders entries chronologically. Source order is not
// trusted; ties keep their relative order so repeated runs agree.
func SortLogEntries(entries []LogEntry) {
	slices.SortStableFunc(entries, func(a, b LogEntry) int {
		return a.Date.Compare(b.Date)
	})
}

// NormalizeName lowercases and collapses whitespace for identity comparison.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// SameIdentity reports whether two pilot names plausibly refer to the same
// person. Containment tolerates rank-prefixed forms ("Ltn W. Smith" vs
// "Smith"); anything else is a material difference.
func SameIdentity(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return true
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
