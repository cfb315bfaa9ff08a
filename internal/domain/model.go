package domain

// Ace is a ranked projection over a pilot: position in the leaderboard by
// victory count. Derived on every sync, never stored.
type Ace struct {
	Position  int // 1-based
	Serial    int64
	Name      string
	Rank      string
	Squadron  string
	Victories int
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Diagnostic categories accumulated during a sync.
const (
	DiagMalformedRecord = "malformed-record"
	DiagSchemaMismatch  = "schema-mismatch"
	DiagWeatherMiss     = "weather-miss"
	DiagStoreCorrupt    = "annotation-store-corrupt"
	DiagAbsentCategory  = "absent-category"
)

// Diagnostic is a recovered condition surfaced alongside the model instead
// of aborting the sync.
type Diagnostic struct {
	Severity Severity
	Category string
	Path     string
	Message  string
}

// CampaignModel is the unified output of one sync: resolved, aggregated and
// annotation-merged. It is handed to presentation and export collaborators
// as a read-only value.
type CampaignModel struct {
	Campaign     Campaign
	Pilot        Pilot
	Squadrons    []Squadron
	Aces         []Ace
	Missions     []MissionRecord // chronological
	Achievements []Achievement
}

// PrimarySquadron returns the tracked pilot's squadron when resolved.
func (m *CampaignModel) PrimarySquadron() *Squadron {
	for i := range m.Squadrons {
		if m.Squadrons[i].ID == m.Pilot.SquadronID {
			return &m.Squadrons[i]
		}
	}
	if len(m.Squadrons) > 0 {
		return &m.Squadrons[0]
	}
	return nil
}
