package application

import (
	"fmt"
	"slices"
	"strings"

	"skylog/internal/domain"
)

// Resolution is the joined entity graph produced from a RecordSet. It is a
// pure function of its inputs: identical records always resolve to the
// identical graph.
type Resolution struct {
	Campaign  domain.Campaign
	Pilot     domain.Pilot
	Squadrons []domain.Squadron
	Missions  []domain.MissionRecord
	Log       []domain.LogEntry
}

// Resolve joins the loaded records by their weak keys: combat reports to
// missions by date and header agreement, log entries to squadrons by id,
// weather snapshots to missions through the lookup. A serial number claimed
// by materially different names aborts with IdentityConflictError.
func Resolve(rs *RecordSet, weather WeatherLookup) (*Resolution, []domain.Diagnostic, error) {
	if rs.Campaign == nil {
		return nil, nil, ErrHeaderAbsent
	}

	var diags []domain.Diagnostic

	if err := checkIdentities(rs); err != nil {
		return nil, nil, err
	}

	missions := slices.Clone(rs.Missions)
	if len(missions) == 0 && len(rs.Reports) > 0 {
		// Older campaigns have no MissionData; the debriefs are then the
		// only record of flown missions.
		missions = missionsFromReports(rs.Reports)
	}
	domain.SortMissions(missions)

	attachReports(missions, rs.Reports)
	diags = append(diags, attachWeather(missions, rs.Campaign.Name, weather)...)

	log := slices.Clone(rs.Log)
	domain.SortLogEntries(log)

	squadronID := resolveSquadronID(rs, missions)
	squadronName := firstNonEmpty(collect(missions, func(m domain.MissionRecord) string { return m.Squadron }))
	aircraft := firstNonEmpty(collect(missions, func(m domain.MissionRecord) string { return m.Aircraft }))

	pilot := domain.Pilot{
		Serial:     rs.Campaign.ReferenceSerial,
		Name:       rs.Campaign.Name,
		SquadronID: squadronID,
		Squadron:   squadronName,
		Aircraft:   aircraft,
	}
	if entry, ok := rosterEntryFor(rs.Roster, pilot.Serial); ok {
		pilot.Rank = entry.Rank
		pilot.Status = entry.Status
	}

	squadrons := buildSquadrons(rs, missions, log, pilot, squadronID, squadronName)

	return &Resolution{
		Campaign:  *rs.Campaign,
		Pilot:     pilot,
		Squadrons: squadrons,
		Missions:  missions,
		Log:       log,
	}, diags, nil
}

type identityClaim struct {
	name   string
	source string
}

func checkIdentities(rs *RecordSet) error {
	seen := map[int64]identityClaim{}

	claim := func(serial int64, name, source string) error {
		if serial == 0 || name == "" {
			return nil
		}
		prev, ok := seen[serial]
		if !ok {
			seen[serial] = identityClaim{name: name, source: source}
			return nil
		}
		if !domain.SameIdentity(prev.name, name) {
			return &IdentityConflictError{
				Serial:  serial,
				NameA:   prev.name,
				NameB:   name,
				SourceA: prev.source,
				SourceB: source,
			}
		}
		return nil
	}

	if err := claim(rs.Campaign.ReferenceSerial, rs.Campaign.Name, rs.Campaign.Source); err != nil {
		return err
	}
	for _, r := range rs.Reports {
		if err := claim(r.Serial, r.PilotName, r.Source); err != nil {
			return err
		}
	}
	for _, e := range rs.Roster {
		if err := claim(e.Serial, e.Name, e.Source); err != nil {
			return err
		}
	}
	for _, a := range rs.Aces {
		if err := claim(a.Serial, a.Name, a.Source); err != nil {
			return err
		}
	}
	for _, m := range rs.Missions {
		for _, p := range m.Participants {
			if err := claim(p.Serial, p.Name, m.Source); err != nil {
				return err
			}
		}
	}
	return nil
}

func missionsFromReports(reports []domain.CombatReport) []domain.MissionRecord {
	missions := make([]domain.MissionRecord, 0, len(reports))
	for i := range reports {
		r := reports[i]
		missions = append(missions, domain.MissionRecord{
			Date:       r.Date,
			Time:       r.Time,
			Squadron:   r.Squadron,
			Aircraft:   r.Aircraft,
			Duty:       r.Duty,
			Airfield:   r.Locality,
			Squadmates: slices.Clone(r.FlightPilots),
			Source:     r.Source,
			Partial:    r.Partial,
		})
	}
	return missions
}

// attachReports joins each combat report to at most one mission. The date
// is the primary weak key; same-day candidates are scored on header
// agreement (squadron, aircraft, duty, time). A lone candidate needs no
// further agreement, a contested day needs at least one point.
func attachReports(missions []domain.MissionRecord, reports []domain.CombatReport) {
	byDate := map[string][]int{}
	for i := range missions {
		key := domain.DateKey(missions[i].Date)
		byDate[key] = append(byDate[key], i)
	}

	for ri := range reports {
		candidates := byDate[domain.DateKey(reports[ri].Date)]
		best, bestScore := -1, 0
		for _, mi := range candidates {
			if missions[mi].Report != nil {
				continue
			}
			score := matchScore(&missions[mi], &reports[ri])
			if len(candidates) == 1 {
				score++
			}
			if score > bestScore {
				best, bestScore = mi, score
			}
		}
		if best >= 0 && bestScore > 0 {
			report := reports[ri]
			missions[best].Report = &report
			if len(missions[best].Squadmates) == 0 {
				missions[best].Squadmates = namesFromDebrief(report.HAReport)
			}
		}
	}
}

func matchScore(m *domain.MissionRecord, r *domain.CombatReport) int {
	score := 0
	if r.Squadron != "" && r.Squadron == m.Squadron {
		score += 2
	}
	if r.Aircraft != "" && r.Aircraft == m.Aircraft {
		score++
	}
	if r.Duty != "" && r.Duty == m.Duty {
		score++
	}
	if r.Time != "" && r.Time == m.Time {
		score++
	}
	return score
}

func attachWeather(missions []domain.MissionRecord, pilotName string, weather WeatherLookup) []domain.Diagnostic {
	if weather == nil {
		return nil
	}
	var diags []domain.Diagnostic
	for i := range missions {
		snapshot, err := weather(pilotName, missions[i].Date)
		if err != nil {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Category: domain.DiagWeatherMiss,
				Path:     missions[i].Source,
				Message:  fmt.Sprintf("weather lookup failed: %v", err),
			})
			continue
		}
		if snapshot == nil {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityInfo,
				Category: domain.DiagWeatherMiss,
				Path:     missions[i].Source,
				Message:  "no .mission file matched",
			})
			continue
		}
		missions[i].Weather = snapshot
	}
	return diags
}

func resolveSquadronID(rs *RecordSet, missions []domain.MissionRecord) int64 {
	if rs.Campaign.SquadronID != 0 {
		return rs.Campaign.SquadronID
	}
	for i := len(missions) - 1; i >= 0; i-- {
		if missions[i].SquadronID != 0 {
			return missions[i].SquadronID
		}
	}
	for i := len(missions) - 1; i >= 0; i-- {
		for _, p := range missions[i].Participants {
			if p.Serial == rs.Campaign.ReferenceSerial && p.SquadronID != 0 {
				return p.SquadronID
			}
		}
	}
	return 0
}

// buildSquadrons assembles the primary squadron roster with the source
// priority of the original data: Personnel catalog, then the latest
// mission's participant list, then debrief names.
func buildSquadrons(rs *RecordSet, missions []domain.MissionRecord, log []domain.LogEntry,
	pilot domain.Pilot, squadronID int64, squadronName string) []domain.Squadron {

	var roster []domain.Pilot
	switch {
	case len(rs.Roster) > 0:
		for _, e := range rs.Roster {
			roster = append(roster, domain.Pilot{
				Serial:     e.Serial,
				Name:       e.Name,
				Rank:       e.Rank,
				SquadronID: squadronID,
				Squadron:   squadronName,
				Status:     e.Status,
				Stats:      basicStats(e.MissionsFlown, e.Victories),
			})
		}
	case len(missions) > 0:
		last := missions[len(missions)-1]
		for _, p := range last.Participants {
			roster = append(roster, domain.Pilot{
				Serial:     p.Serial,
				Name:       p.Name,
				SquadronID: squadronID,
				Squadron:   squadronName,
			})
		}
		if len(roster) == 0 {
			for _, name := range last.Squadmates {
				roster = append(roster, domain.Pilot{
					Name:       name,
					SquadronID: squadronID,
					Squadron:   squadronName,
				})
			}
			roster = append([]domain.Pilot{pilot}, roster...)
		}
	}

	// Most flown first, then most victories; deterministic tail by name.
	slices.SortStableFunc(roster, func(a, b domain.Pilot) int {
		if a.Stats.Sorties != b.Stats.Sorties {
			return b.Stats.Sorties - a.Stats.Sorties
		}
		if a.Stats.Victories != b.Stats.Victories {
			return b.Stats.Victories - a.Stats.Victories
		}
		return strings.Compare(a.Name, b.Name)
	})

	primary := domain.Squadron{
		ID:     squadronID,
		Name:   squadronName,
		Roster: roster,
	}

	others := map[int64][]domain.LogEntry{}
	for _, entry := range log {
		if entry.SquadronID == squadronID {
			primary.Activity = append(primary.Activity, entry)
			continue
		}
		if entry.SquadronID != 0 {
			others[entry.SquadronID] = append(others[entry.SquadronID], entry)
		}
	}

	squadrons := []domain.Squadron{primary}
	ids := make([]int64, 0, len(others))
	for id := range others {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		squadrons = append(squadrons, domain.Squadron{ID: id, Activity: others[id]})
	}
	return squadrons
}

func rosterEntryFor(roster []domain.RosterEntry, serial int64) (domain.RosterEntry, bool) {
	for _, e := range roster {
		if e.Serial == serial {
			return e, true
		}
	}
	return domain.RosterEntry{}, false
}

func basicStats(sorties, victories int) domain.PilotStats {
	s := domain.PilotStats{Sorties: sorties, Victories: victories}
	div := sorties
	if div < 1 {
		div = 1
	}
	s.Ratio = float64(victories) / float64(div)
	return s
}

// namesFromDebrief pulls wingman names out of the "This mission was flown
// by" block of an HA report.
func namesFromDebrief(text string) []string {
	if text == "" {
		return nil
	}
	var names []string
	collecting := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !collecting {
			if strings.HasPrefix(strings.ToLower(line), "this mission was flown by") {
				collecting = true
			}
			continue
		}
		if line == "" {
			break
		}
		if strings.ContainsAny(line, "0123456789") {
			continue
		}
		if !slices.Contains(names, line) {
			names = append(names, line)
		}
	}
	return names
}

func collect(missions []domain.MissionRecord, f func(domain.MissionRecord) string) []string {
	out := make([]string, 0, len(missions))
	for _, m := range missions {
		out = append(out, f(m))
	}
	return out
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
