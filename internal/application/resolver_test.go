package application

import (
	"errors"
	"testing"
	"time"

	"skylog/internal/domain"
)

func day(d int) time.Time {
	return time.Date(1917, 4, d, 0, 0, 0, 0, time.UTC)
}

func baseRecordSet() *RecordSet {
	return &RecordSet{
		Campaign: &domain.Campaign{
			Name:            "Werner Voss",
			Date:            day(20),
			ReferenceSerial: 1001,
			SquadronID:      501,
			Source:          "Campaign.json",
		},
	}
}

func TestResolveRequiresHeader(t *testing.T) {
	_, _, err := Resolve(&RecordSet{}, nil)
	if !errors.Is(err, ErrHeaderAbsent) {
		t.Fatalf("expected ErrHeaderAbsent, got %v", err)
	}
}

func TestResolveIdentityConflict(t *testing.T) {
	rs := baseRecordSet()
	rs.Reports = []domain.CombatReport{
		{Serial: 1001, PilotName: "Kurt Wolff", Date: day(1), Source: "r1.json"},
	}

	_, _, err := Resolve(rs, nil)
	if !errors.Is(err, ErrIdentityConflict) {
		t.Fatalf("expected ErrIdentityConflict, got %v", err)
	}
	var conflict *IdentityConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected IdentityConflictError, got %T", err)
	}
	if conflict.Serial != 1001 {
		t.Errorf("conflict serial = %d, want 1001", conflict.Serial)
	}
	if conflict.SourceA == "" || conflict.SourceB == "" {
		t.Error("conflict should name both sources")
	}
}

func TestResolveToleratesRankPrefixedNames(t *testing.T) {
	rs := baseRecordSet()
	rs.Reports = []domain.CombatReport{
		{Serial: 1001, PilotName: "Ltn Werner Voss", Date: day(1), Source: "r1.json"},
	}
	if _, _, err := Resolve(rs, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveAttachesReportByDateAndScore(t *testing.T) {
	rs := baseRecordSet()
	rs.Missions = []domain.MissionRecord{
		{Date: day(2), Squadron: "Jasta 2", Duty: "Patrol", Source: "m1.json"},
		{Date: day(2), Squadron: "Jasta 11", Duty: "Escort", Source: "m2.json"},
	}
	rs.Reports = []domain.CombatReport{
		{Serial: 1001, PilotName: "Werner Voss", Date: day(2),
			Squadron: "Jasta 11", Duty: "Escort", Source: "r1.json"},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var withReport, withoutReport *domain.MissionRecord
	for i := range resolution.Missions {
		if resolution.Missions[i].Source == "m2.json" {
			withReport = &resolution.Missions[i]
		} else {
			withoutReport = &resolution.Missions[i]
		}
	}
	if withReport.Report == nil {
		t.Fatal("report should attach to the squadron/duty match")
	}
	if withoutReport.Report != nil {
		t.Error("report attached to both missions")
	}
}

func TestResolveReportAttachesAtMostOnce(t *testing.T) {
	rs := baseRecordSet()
	rs.Missions = []domain.MissionRecord{
		{Date: day(3), Squadron: "Jasta 11", Source: "m1.json"},
		{Date: day(3), Squadron: "Jasta 11", Source: "m2.json"},
	}
	rs.Reports = []domain.CombatReport{
		{Serial: 1001, PilotName: "Werner Voss", Date: day(3), Squadron: "Jasta 11", Source: "r1.json"},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attached := 0
	for i := range resolution.Missions {
		if resolution.Missions[i].Report != nil {
			attached++
		}
	}
	if attached != 1 {
		t.Errorf("report attached %d times, want 1", attached)
	}
}

func TestResolveSynthesizesMissionsFromReports(t *testing.T) {
	rs := baseRecordSet()
	rs.Reports = []domain.CombatReport{
		{Serial: 1001, PilotName: "Werner Voss", Date: day(5),
			Duty: "Patrol", Locality: "Arras", Source: "r1.json"},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolution.Missions) != 1 {
		t.Fatalf("expected 1 synthesized mission, got %d", len(resolution.Missions))
	}
	mission := resolution.Missions[0]
	if mission.Airfield != "Arras" || mission.Duty != "Patrol" {
		t.Errorf("synthesized mission lost report fields: %+v", mission)
	}
	if mission.Report == nil {
		t.Error("synthesized mission should carry its report")
	}
}

func TestResolveSortsLogChronologically(t *testing.T) {
	rs := baseRecordSet()
	rs.Log = []domain.LogEntry{
		{Date: day(9), Text: "later"},
		{Date: day(1), Text: "earlier"},
		{Date: day(9), Text: "later still"},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolution.Log[0].Text != "earlier" {
		t.Errorf("log not chronological: %v", resolution.Log)
	}
	// Stable: same-day entries keep their relative order.
	if resolution.Log[1].Text != "later" || resolution.Log[2].Text != "later still" {
		t.Errorf("same-day order changed: %v", resolution.Log)
	}
}

func TestResolveWeatherMissBecomesDiagnostic(t *testing.T) {
	rs := baseRecordSet()
	rs.Missions = []domain.MissionRecord{{Date: day(2), Source: "m1.json"}}

	lookup := func(string, time.Time) (*domain.WeatherSnapshot, error) {
		return nil, nil
	}
	resolution, diags, err := Resolve(rs, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolution.Missions[0].Weather != nil {
		t.Error("no snapshot should attach on a miss")
	}
	found := false
	for _, diag := range diags {
		if diag.Category == domain.DiagWeatherMiss && diag.Severity == domain.SeverityInfo {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a weather-miss info diagnostic, got %v", diags)
	}
}

func TestResolveWeatherAttaches(t *testing.T) {
	rs := baseRecordSet()
	rs.Missions = []domain.MissionRecord{{Date: day(2), Source: "m1.json"}}

	lookup := func(_ string, date time.Time) (*domain.WeatherSnapshot, error) {
		return &domain.WeatherSnapshot{
			Source: "w.mission",
			Fields: map[string]string{domain.WeatherTemperature: "-2"},
		}, nil
	}
	resolution, _, err := Resolve(rs, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolution.Missions[0].Weather == nil {
		t.Fatal("snapshot should attach")
	}
	if v, _ := resolution.Missions[0].Weather.Get(domain.WeatherTemperature); v != "-2" {
		t.Errorf("temperature = %q, want -2", v)
	}
}

func TestResolveRosterFromPersonnel(t *testing.T) {
	rs := baseRecordSet()
	rs.Roster = []domain.RosterEntry{
		{Serial: 1001, Name: "Werner Voss", Rank: "Ltn", MissionsFlown: 10, Victories: 4, Source: "501.json"},
		{Serial: 1002, Name: "Kurt Wolff", Rank: "Obltn", MissionsFlown: 30, Victories: 20, Status: domain.StatusKIA, Source: "501.json"},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	squadron := resolution.Squadrons[0]
	if len(squadron.Roster) != 2 {
		t.Fatalf("roster size = %d, want 2", len(squadron.Roster))
	}
	// Most flown first.
	if squadron.Roster[0].Name != "Kurt Wolff" {
		t.Errorf("roster order wrong: %v", squadron.Roster)
	}
	if resolution.Pilot.Rank != "Ltn" {
		t.Errorf("tracked pilot rank = %q, want Ltn", resolution.Pilot.Rank)
	}
}

func TestResolveRosterFallsBackToParticipants(t *testing.T) {
	rs := baseRecordSet()
	rs.Missions = []domain.MissionRecord{
		{Date: day(2), SquadronID: 501, Source: "m1.json", Participants: []domain.MissionPilot{
			{Name: "Werner Voss", Serial: 1001, SquadronID: 501},
			{Name: "Kurt Wolff", Serial: 1002, SquadronID: 501},
		}},
	}

	resolution, _, err := Resolve(rs, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolution.Squadrons[0].Roster) != 2 {
		t.Errorf("roster size = %d, want 2", len(resolution.Squadrons[0].Roster))
	}
}

func TestNamesFromDebrief(t *testing.T) {
	text := "Weather was poor.\n\nThis mission was flown by\nWerner Voss\nKurt Wolff\n\nNothing else."
	names := namesFromDebrief(text)
	if len(names) != 2 || names[0] != "Werner Voss" || names[1] != "Kurt Wolff" {
		t.Errorf("got %v", names)
	}
	if namesFromDebrief("") != nil {
		t.Error("empty debrief should yield nil")
	}
}
