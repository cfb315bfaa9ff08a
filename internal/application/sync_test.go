package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"skylog/internal/domain"
)

// fakeSource serves canned records, mimicking a loaded campaign directory.
type fakeSource struct {
	campaigns []string
	fileSet   *domain.FileSet
	locateErr error
	campaign  *domain.Campaign
	aces      []domain.AceEntry
	log       []domain.LogEntry
	reports   []domain.CombatReport
	missions  []domain.MissionRecord
	roster    []domain.RosterEntry

	rosterRequests []int64
}

func (f *fakeSource) Campaigns() ([]string, error) { return f.campaigns, nil }

func (f *fakeSource) Locate(campaign string) (*domain.FileSet, error) {
	if f.locateErr != nil {
		return nil, f.locateErr
	}
	if f.fileSet != nil {
		return f.fileSet, nil
	}
	return &domain.FileSet{Root: campaign}, nil
}

func (f *fakeSource) LoadCampaign(ctx context.Context, fs *domain.FileSet) (*domain.Campaign, []domain.Diagnostic) {
	return f.campaign, nil
}

func (f *fakeSource) LoadAces(ctx context.Context, fs *domain.FileSet) ([]domain.AceEntry, []domain.Diagnostic) {
	return f.aces, nil
}

func (f *fakeSource) LoadLog(ctx context.Context, fs *domain.FileSet) ([]domain.LogEntry, []domain.Diagnostic) {
	return f.log, nil
}

func (f *fakeSource) LoadCombatReports(ctx context.Context, fs *domain.FileSet, serial int64) ([]domain.CombatReport, []domain.Diagnostic) {
	return f.reports, nil
}

func (f *fakeSource) LoadMissionData(ctx context.Context, fs *domain.FileSet) ([]domain.MissionRecord, []domain.Diagnostic) {
	return f.missions, nil
}

func (f *fakeSource) LoadRoster(ctx context.Context, fs *domain.FileSet, squadronID int64) ([]domain.RosterEntry, []domain.Diagnostic) {
	f.rosterRequests = append(f.rosterRequests, squadronID)
	return f.roster, nil
}

// memStore is an in-memory annotation store.
type memStore struct {
	records map[int64]*domain.AnnotationRecord
}

func newMemStore() *memStore {
	return &memStore{records: map[int64]*domain.AnnotationRecord{}}
}

func (m *memStore) Get(serial int64) (*domain.AnnotationRecord, error) {
	return m.records[serial], nil
}

func (m *memStore) Put(record *domain.AnnotationRecord) error {
	m.records[record.Serial] = record
	return nil
}

func (m *memStore) All() ([]domain.AnnotationRecord, error) {
	var out []domain.AnnotationRecord
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

// brokenStore fails every lookup, like a database gone bad mid-run.
type brokenStore struct{}

func (brokenStore) Get(int64) (*domain.AnnotationRecord, error) {
	return nil, errors.New("disk I/O error")
}

func (brokenStore) Put(*domain.AnnotationRecord) error { return nil }

func (brokenStore) All() ([]domain.AnnotationRecord, error) { return nil, nil }

func (brokenStore) Close() error { return nil }

func happySource() *fakeSource {
	return &fakeSource{
		campaigns: []string{"Voss"},
		campaign: &domain.Campaign{
			Name:            "Werner Voss",
			Date:            day(20),
			ReferenceSerial: 1001,
			SquadronID:      501,
			Source:          "Campaign.json",
		},
		aces: []domain.AceEntry{
			{Serial: 1001, Name: "Werner Voss", Victories: 6, Source: "aces.json"},
			{Serial: 1002, Name: "Kurt Wolff", Victories: 20, Source: "aces.json"},
		},
		log: []domain.LogEntry{
			{Date: day(3), Text: "moved to Arras", SquadronID: 501},
		},
		reports: []domain.CombatReport{
			{Serial: 1001, PilotName: "Werner Voss", Date: day(2),
				Claims: []domain.VictoryClaim{{Aircraft: "Nieuport 17"}},
				Source: "r1.json"},
		},
		missions: []domain.MissionRecord{
			{Date: day(2), SquadronID: 501, Duty: "Patrol", Source: "m1.json"},
			{Date: day(4), SquadronID: 501, Duty: "Escort", Source: "m2.json"},
		},
		roster: []domain.RosterEntry{
			{Serial: 1001, Name: "Werner Voss", Rank: "Ltn", MissionsFlown: 2, Victories: 1, Source: "501.json"},
		},
	}
}

func TestSyncBuildsModel(t *testing.T) {
	source := happySource()
	store := newMemStore()
	syncer := NewSyncer(source, nil, store, nil)

	var stages []string
	model, diags, err := syncer.Sync(context.Background(), "Voss", func(stage string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.Pilot.Stats.Sorties != 1 {
		t.Errorf("sorties = %d, want 1", model.Pilot.Stats.Sorties)
	}
	if model.Pilot.Stats.Victories != 1 {
		t.Errorf("victories = %d, want 1", model.Pilot.Stats.Victories)
	}
	if len(model.Aces) != 2 || model.Aces[0].Name != "Kurt Wolff" {
		t.Errorf("aces not ranked: %v", model.Aces)
	}
	if len(model.Missions) != 2 {
		t.Errorf("missions = %d, want 2", len(model.Missions))
	}
	if len(source.rosterRequests) != 1 || source.rosterRequests[0] != 501 {
		t.Errorf("roster requests = %v, want [501]", source.rosterRequests)
	}
	if stages[0] != StageLocate || stages[len(stages)-1] != StageDone {
		t.Errorf("stage order wrong: %v", stages)
	}
	for _, diag := range diags {
		if diag.Severity == domain.SeverityError {
			t.Errorf("unexpected error diagnostic: %+v", diag)
		}
	}
}

func TestSyncHeaderAbsent(t *testing.T) {
	source := happySource()
	source.campaign = nil
	syncer := NewSyncer(source, nil, newMemStore(), nil)

	_, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if !errors.Is(err, ErrHeaderAbsent) {
		t.Fatalf("expected ErrHeaderAbsent, got %v", err)
	}
}

func TestSyncCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	syncer := NewSyncer(happySource(), nil, newMemStore(), nil)
	_, _, err := syncer.Sync(ctx, "Voss", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSyncMergesAnnotations(t *testing.T) {
	store := newMemStore()
	stored := &domain.AnnotationRecord{
		Serial:     1001,
		BirthPlace: "Krefeld",
		UpdatedAt:  time.Now(),
	}
	store.Put(stored)

	syncer := NewSyncer(happySource(), nil, store, nil)
	model, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Pilot.Annotation == nil {
		t.Fatal("annotation not merged")
	}
	if model.Pilot.Annotation.BirthPlace != "Krefeld" {
		t.Errorf("birthplace = %q", model.Pilot.Annotation.BirthPlace)
	}
	if model.Pilot.Annotation == stored {
		t.Error("model aliases the store-owned record")
	}
}

func TestSyncRecomputesInsteadOfAccumulating(t *testing.T) {
	source := happySource()
	syncer := NewSyncer(source, nil, newMemStore(), nil)

	first, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Pilot.Stats.Sorties != second.Pilot.Stats.Sorties ||
		first.Pilot.Stats.Victories != second.Pilot.Stats.Victories {
		t.Errorf("repeated sync changed stats: %+v vs %+v",
			first.Pilot.Stats, second.Pilot.Stats)
	}
}

func TestSyncWithoutCombatReports(t *testing.T) {
	source := happySource()
	source.reports = nil
	syncer := NewSyncer(source, nil, newMemStore(), nil)

	model, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("missing combat reports should not be fatal: %v", err)
	}
	if model.Pilot.Stats.Sorties != 0 {
		t.Errorf("sorties = %d, want 0 without any reports", model.Pilot.Stats.Sorties)
	}
	if len(model.Missions) != 2 {
		t.Errorf("missions = %d, mission data should still load", len(model.Missions))
	}
}

func TestSyncPreservesAcesVictoryTotal(t *testing.T) {
	source := happySource()
	syncer := NewSyncer(source, nil, newMemStore(), nil)

	model, diags, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ranked := 0
	for _, ace := range model.Aces {
		ranked += ace.Victories
	}
	if want := domain.TotalVictories(source.aces); ranked != want {
		t.Errorf("ranked victories = %d, aces file carries %d", ranked, want)
	}
	for _, diag := range diags {
		if diag.Category == domain.DiagSchemaMismatch && diag.Severity == domain.SeverityWarning {
			t.Errorf("unexpected victory-total diagnostic: %+v", diag)
		}
	}
}

func TestSyncStoreFailureBecomesDiagnostic(t *testing.T) {
	syncer := NewSyncer(happySource(), nil, brokenStore{}, nil)

	model, diags, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("store failure should not abort the sync: %v", err)
	}
	if model.Pilot.Annotation != nil {
		t.Error("no annotation should survive a failing store")
	}
	found := false
	for _, diag := range diags {
		if diag.Category == domain.DiagStoreCorrupt && diag.Severity == domain.SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a store diagnostic, got %+v", diags)
	}
}

func TestSyncDerivesSquadronFromMissions(t *testing.T) {
	source := happySource()
	source.campaign.SquadronID = 0
	syncer := NewSyncer(source, nil, newMemStore(), nil)

	model, _, err := syncer.Sync(context.Background(), "Voss", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Pilot.SquadronID != 501 {
		t.Errorf("squadron id = %d, want 501 from mission data", model.Pilot.SquadronID)
	}
}
