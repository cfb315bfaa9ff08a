package pwcg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"skylog/internal/application"
	"skylog/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func campaignDir(t *testing.T) (root, dir string) {
	t.Helper()
	root = t.TempDir()
	dir = filepath.Join(root, "Voss")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	return root, dir
}

func TestCampaignsListsDirectories(t *testing.T) {
	root, _ := campaignDir(t)
	writeFile(t, filepath.Join(root, "stray.txt"), "not a campaign")

	source := NewSource(root, nil)
	campaigns, err := source.Campaigns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0] != "Voss" {
		t.Errorf("got %v, want [Voss]", campaigns)
	}
}

func TestLocateMissingCampaign(t *testing.T) {
	source := NewSource(t.TempDir(), nil)
	_, err := source.Locate("nope")
	if err == nil {
		t.Fatal("expected an error for a missing campaign dir")
	}
}

func TestLocateFindsFileSet(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "Campaign.json"), "{}")
	writeFile(t, filepath.Join(dir, "CampaignAces.json"), "[]")
	writeFile(t, filepath.Join(dir, "CombatReports", "1001", "report1.json"), "{}")
	writeFile(t, filepath.Join(dir, "CombatReports", "notaserial", "x.json"), "{}")
	writeFile(t, filepath.Join(dir, "MissionData", "m1.json"), "{}")
	writeFile(t, filepath.Join(dir, "Personnel", "501.json"), "{}")

	source := NewSource(root, nil)
	fs, err := source.Locate("Voss")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs.CampaignJSON == "" || fs.AcesJSON == "" {
		t.Error("header and aces files should be located")
	}
	if fs.LogJSON != "" {
		t.Error("absent log file should stay empty")
	}
	if len(fs.CombatReports[1001]) != 1 {
		t.Errorf("combat reports for 1001 = %v", fs.CombatReports)
	}
	if _, ok := fs.CombatReports[0]; ok {
		t.Error("non-numeric report folder should be skipped")
	}
	if len(fs.MissionData) != 1 {
		t.Errorf("mission data = %v", fs.MissionData)
	}
	if fs.Personnel[501] == "" {
		t.Error("personnel catalog not located")
	}
}

func TestLocateRejectsPlainFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Voss"), "a file, not a campaign")

	source := NewSource(root, nil)
	_, err := source.Locate("Voss")
	if !errors.Is(err, application.ErrPathInvalid) {
		t.Fatalf("expected ErrPathInvalid for a plain file, got %v", err)
	}
}

func TestLoadCampaignHeader(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "Campaign.json"), `{
		"name": "Werner Voss",
		"date": "19170423",
		"referencePlayerSerialNumber": 1001,
		"squadronId": 501,
		"product": "FC"
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	campaign, diags := source.LoadCampaign(context.Background(), fs)
	if campaign == nil {
		t.Fatalf("expected a campaign, diags: %v", diags)
	}
	if campaign.Name != "Werner Voss" {
		t.Errorf("name = %q", campaign.Name)
	}
	if domain.DateKey(campaign.Date) != "19170423" {
		t.Errorf("date = %v", campaign.Date)
	}
	if campaign.ReferenceSerial != 1001 || campaign.SquadronID != 501 {
		t.Errorf("ids wrong: %+v", campaign)
	}
}

func TestLoadCampaignSerialAsString(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "Campaign.json"), `{
		"campaignName": "Werner Voss",
		"date": "1917-04-23",
		"serialNumber": "1001"
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	campaign, _ := source.LoadCampaign(context.Background(), fs)
	if campaign == nil {
		t.Fatal("expected a campaign")
	}
	if campaign.ReferenceSerial != 1001 {
		t.Errorf("string serial not coerced: %d", campaign.ReferenceSerial)
	}
}

func TestLoadCampaignAbsent(t *testing.T) {
	root, _ := campaignDir(t)
	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")

	campaign, diags := source.LoadCampaign(context.Background(), fs)
	if campaign != nil {
		t.Error("absent header should return nil")
	}
	if len(diags) == 0 || diags[0].Category != domain.DiagAbsentCategory {
		t.Errorf("expected absent-category diagnostic, got %v", diags)
	}
}

func TestLoadCampaignMalformed(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "Campaign.json"), "{ not json")

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	campaign, diags := source.LoadCampaign(context.Background(), fs)
	if campaign != nil {
		t.Error("malformed header should return nil")
	}
	if len(diags) == 0 || diags[0].Category != domain.DiagMalformedRecord {
		t.Errorf("expected malformed-record diagnostic, got %v", diags)
	}
}

func TestLoadAcesList(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CampaignAces.json"), `[
		{"name": "Kurt Wolff", "serialNumber": 1002, "victories": 20, "squadron": "Jasta 11"},
		{"name": "Partial Ace", "serialNumber": 1003}
	]`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	aces, _ := source.LoadAces(context.Background(), fs)
	if len(aces) != 2 {
		t.Fatalf("aces = %v", aces)
	}
	byName := map[string]domain.AceEntry{}
	for _, a := range aces {
		byName[a.Name] = a
	}
	if byName["Kurt Wolff"].Victories != 20 {
		t.Errorf("victories = %d", byName["Kurt Wolff"].Victories)
	}
	if !byName["Partial Ace"].Partial {
		t.Error("ace without victories should be partial")
	}
}

func TestLoadAcesEnvelopeWithVictoryList(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CampaignAces.json"), `{
		"acesInCampaign": {
			"1002": {"name": "Kurt Wolff", "victories": [{"type": "aircraft"}, {"type": "aircraft"}]}
		}
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	aces, _ := source.LoadAces(context.Background(), fs)
	if len(aces) != 1 {
		t.Fatalf("aces = %v", aces)
	}
	if aces[0].Serial != 1002 {
		t.Errorf("serial from map key = %d, want 1002", aces[0].Serial)
	}
	if aces[0].Victories != 2 {
		t.Errorf("victory list length = %d, want 2", aces[0].Victories)
	}
}

func TestLoadAcesEnvelopeOrderIsStable(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CampaignAces.json"), `{
		"acesInCampaign": {
			"1003": {"name": "Werner Voss", "victories": 6},
			"1002": {"name": "Kurt Wolff", "victories": 20}
		}
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	aces, _ := source.LoadAces(context.Background(), fs)
	if len(aces) != 2 {
		t.Fatalf("aces = %v", aces)
	}
	if aces[0].Serial != 1002 || aces[1].Serial != 1003 {
		t.Errorf("entries not in key order: %v", aces)
	}
}

func TestLoadLogShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "flat list",
			content: `[{"date": "19170401", "log": "one"}, {"date": "19170402", "log": "two"}]`,
			want:    2,
		},
		{
			name: "grouped by date",
			content: `{"campaignLogsByDate": {
				"19170401": {"date": "19170401", "logs": [
					{"log": "one", "squadronId": 501},
					{"log": "two"}
				]}
			}}`,
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, dir := campaignDir(t)
			writeFile(t, filepath.Join(dir, "CampaignLog.json"), tt.content)

			source := NewSource(root, nil)
			fs, _ := source.Locate("Voss")
			entries, diags := source.LoadLog(context.Background(), fs)
			if len(entries) != tt.want {
				t.Fatalf("entries = %v, diags = %v", entries, diags)
			}
			for _, entry := range entries {
				if entry.Date.IsZero() {
					t.Errorf("entry without date: %+v", entry)
				}
			}
		})
	}
}

func TestLoadLogGroupedDatesAreChronological(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CampaignLog.json"), `{"campaignLogsByDate": {
		"19170402": {"logs": [{"log": "second"}]},
		"19170401": {"logs": [{"log": "first"}]}
	}}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	entries, _ := source.LoadLog(context.Background(), fs)
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Text != "first" || entries[1].Text != "second" {
		t.Errorf("groups not in date order: %v", entries)
	}
}

func TestLoadCombatReports(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CombatReports", "1001", "r1.json"), `{
		"reportPilotName": "Werner Voss",
		"squadron": "Jasta 2",
		"date": "19170423",
		"time": "11:30",
		"type": "Albatros D.III",
		"duty": "Patrol",
		"haReport": "This mission was flown by\nWerner Voss\nKurt Wolff",
		"flightPilots": ["Werner Voss", "Kurt Wolff"],
		"claims": [{"type": "aircraft", "aircraft": "Nieuport 17"}]
	}`)
	writeFile(t, filepath.Join(dir, "CombatReports", "1001", "broken.json"), "{ nope")

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	reports, diags := source.LoadCombatReports(context.Background(), fs, 1001)
	if len(reports) != 1 {
		t.Fatalf("reports = %v", reports)
	}
	report := reports[0]
	if report.Serial != 1001 {
		t.Errorf("folder serial not used: %d", report.Serial)
	}
	if len(report.Claims) != 1 || report.Claims[0].Aircraft != "Nieuport 17" {
		t.Errorf("claims = %v", report.Claims)
	}
	if len(report.FlightPilots) != 2 {
		t.Errorf("flight pilots = %v", report.FlightPilots)
	}

	malformed := 0
	for _, diag := range diags {
		if diag.Category == domain.DiagMalformedRecord {
			malformed++
		}
	}
	if malformed != 1 {
		t.Errorf("expected one malformed diagnostic, got %v", diags)
	}
}

func TestLoadCombatReportsStopsWhenCancelled(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "CombatReports", "1001", "r1.json"), `{"date": "19170423"}`)
	writeFile(t, filepath.Join(dir, "CombatReports", "1001", "r2.json"), `{"date": "19170424"}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reports, _ := source.LoadCombatReports(ctx, fs, 1001)
	if len(reports) != 0 {
		t.Errorf("cancelled load read %d reports, want 0", len(reports))
	}
}

func TestLoadMissionData(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "MissionData", "m1.json"), `{
		"missionHeader": {
			"date": "19170423",
			"time": "11:30",
			"squadron": "Jasta 2",
			"squadronId": 501,
			"aircraftType": "Albatros D.III",
			"duty": "Patrol",
			"airfield": "Marcke",
			"altitude": 2500
		},
		"missionDescription": "Patrol over the lines.",
		"missionPlanes": {
			"1": {"pilotName": "Werner Voss", "pilotSerialNumber": 1001, "squadronId": 501},
			"2": {"pilotName": "Kurt Wolff", "pilotSerialNumber": 1002, "squadronId": 501}
		}
	}`)
	writeFile(t, filepath.Join(dir, "MissionData", "m2.json"), `{
		"missionDescription": "Header went missing."
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	missions, diags := source.LoadMissionData(context.Background(), fs)
	if len(missions) != 2 {
		t.Fatalf("missions = %v", missions)
	}

	var full, partial *domain.MissionRecord
	for i := range missions {
		if missions[i].Partial {
			partial = &missions[i]
		} else {
			full = &missions[i]
		}
	}
	if full == nil || partial == nil {
		t.Fatalf("expected one full and one partial record, diags: %v", diags)
	}
	if full.SquadronID != 501 || full.Airfield != "Marcke" {
		t.Errorf("header fields wrong: %+v", full)
	}
	if full.Altitude == nil || *full.Altitude != 2500 {
		t.Errorf("altitude = %v", full.Altitude)
	}
	if len(full.Participants) != 2 {
		t.Errorf("participants = %v", full.Participants)
	}
	if full.Participants[0].Serial > full.Participants[1].Serial {
		t.Error("participants not in stable order")
	}
	if partial.Description == "" {
		t.Error("partial record should keep its description")
	}
}

func TestLoadRoster(t *testing.T) {
	root, dir := campaignDir(t)
	writeFile(t, filepath.Join(dir, "Personnel", "501.json"), `{
		"squadronMembers": {
			"1001": {"name": "Werner Voss", "rank": "Ltn", "missionFlown": 10, "victories": 4, "pilotActiveStatus": 0},
			"1002": {"name": "Kurt Wolff", "rank": "Obltn", "missionFlown": 30, "victories": 20, "pilotActiveStatus": 5}
		}
	}`)

	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")
	roster, _ := source.LoadRoster(context.Background(), fs, 501)
	if len(roster) != 2 {
		t.Fatalf("roster = %v", roster)
	}
	if roster[0].Serial != 1001 {
		t.Errorf("roster not sorted by serial: %v", roster)
	}
	if roster[1].Status != domain.StatusKIA {
		t.Errorf("status = %v, want KIA", roster[1].Status)
	}
	if roster[1].Victories != 20 || roster[1].MissionsFlown != 30 {
		t.Errorf("counts wrong: %+v", roster[1])
	}
}

func TestLoadRosterAbsent(t *testing.T) {
	root, _ := campaignDir(t)
	source := NewSource(root, nil)
	fs, _ := source.Locate("Voss")

	roster, diags := source.LoadRoster(context.Background(), fs, 999)
	if roster != nil {
		t.Errorf("roster = %v, want nil", roster)
	}
	if len(diags) != 1 || diags[0].Severity != domain.SeverityInfo {
		t.Errorf("expected one info diagnostic, got %v", diags)
	}
}
