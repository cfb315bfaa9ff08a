package application

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skylog/internal/domain"
	"skylog/internal/ports"
)

// Syncer runs the full ingestion pipeline for one campaign: locate, load,
// resolve, aggregate, merge annotations. Starting a new sync cancels any
// sync still in flight; the newest request wins.
type Syncer struct {
	source  ports.CampaignSource
	weather ports.WeatherSource
	store   ports.AnnotationStore
	log     *zap.Logger

	mu         sync.Mutex
	cancelPrev context.CancelFunc
}

func NewSyncer(source ports.CampaignSource, weather ports.WeatherSource, store ports.AnnotationStore, log *zap.Logger) *Syncer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{
		source:  source,
		weather: weather,
		store:   store,
		log:     log,
	}
}

// Campaigns lists the campaign directories available for syncing.
func (s *Syncer) Campaigns() ([]string, error) {
	return s.source.Campaigns()
}

// Sync builds the unified model for one campaign. The returned diagnostics
// hold every recovered condition; a non-nil error means no model at all.
// A cancelled context discards all partial work and returns ctx.Err().
func (s *Syncer) Sync(ctx context.Context, campaign string, progress Progress) (*domain.CampaignModel, []domain.Diagnostic, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	s.cancelPrev = cancel
	s.mu.Unlock()

	if progress == nil {
		progress = func(string) {}
	}

	progress(StageLocate)
	fileSet, err := s.source.Locate(campaign)
	if err != nil {
		return nil, nil, err
	}

	progress(StageHeader)
	header, diags := s.source.LoadCampaign(ctx, fileSet)
	if header == nil {
		return nil, diags, fmt.Errorf("%s: %w", campaign, ErrHeaderAbsent)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	rs := &RecordSet{FileSet: fileSet, Campaign: header}

	progress(StageRecords)
	recordDiags, err := s.loadRecords(ctx, rs)
	if err != nil {
		return nil, nil, err
	}
	diags = append(diags, recordDiags...)

	progress(StageRoster)
	rosterDiags := s.loadRoster(ctx, rs)
	diags = append(diags, rosterDiags...)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	progress(StageResolve)
	if s.weather != nil {
		s.weather.Reset()
	}
	resolution, resolveDiags, err := Resolve(rs, s.weatherLookup())
	if err != nil {
		return nil, nil, err
	}
	diags = append(diags, resolveDiags...)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	progress(StageStats)
	resolution.Pilot.Stats = domain.ComputeStats(resolution.Missions)
	aces := domain.RankAces(rs.Aces)
	achievements := domain.EvaluateAchievements(resolution.Pilot.Stats)

	// Ranking must preserve the victory total the aces file carries.
	ranked := 0
	for _, ace := range aces {
		ranked += ace.Victories
	}
	if claimed := domain.TotalVictories(rs.Aces); ranked != claimed {
		diags = append(diags, domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Category: domain.DiagSchemaMismatch,
			Path:     fileSet.AcesJSON,
			Message:  fmt.Sprintf("ranked ace victories (%d) disagree with the aces file total (%d)", ranked, claimed),
		})
	}

	progress(StageMerge)
	mergeDiags := s.mergeAnnotations(resolution)
	diags = append(diags, mergeDiags...)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	model := &domain.CampaignModel{
		Campaign:     resolution.Campaign,
		Pilot:        resolution.Pilot,
		Squadrons:    resolution.Squadrons,
		Aces:         aces,
		Missions:     resolution.Missions,
		Achievements: achievements,
	}

	progress(StageDone)
	s.log.Info("campaign synced",
		zap.String("campaign", campaign),
		zap.Int("missions", len(model.Missions)),
		zap.Int("aces", len(model.Aces)),
		zap.Int("diagnostics", len(diags)))
	return model, diags, nil
}

// loadRecords fans the independent category loads out in parallel. Each
// loader only appends to its own slot; the errgroup wait is the barrier.
func (s *Syncer) loadRecords(ctx context.Context, rs *RecordSet) ([]domain.Diagnostic, error) {
	var (
		acesDiags, logDiags, reportDiags, missionDiags []domain.Diagnostic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs.Aces, acesDiags = s.source.LoadAces(gctx, rs.FileSet)
		return nil
	})
	g.Go(func() error {
		rs.Log, logDiags = s.source.LoadLog(gctx, rs.FileSet)
		return nil
	})
	g.Go(func() error {
		rs.Reports, reportDiags = s.source.LoadCombatReports(gctx, rs.FileSet, rs.Campaign.ReferenceSerial)
		return nil
	})
	g.Go(func() error {
		rs.Missions, missionDiags = s.source.LoadMissionData(gctx, rs.FileSet)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	diags := append(acesDiags, logDiags...)
	diags = append(diags, reportDiags...)
	diags = append(diags, missionDiags...)
	return diags, nil
}

// loadRoster needs the squadron id, which may only be known after the
// mission data is in, so it runs after the parallel phase.
func (s *Syncer) loadRoster(ctx context.Context, rs *RecordSet) []domain.Diagnostic {
	squadronID := rs.Campaign.SquadronID
	if squadronID == 0 {
		for i := len(rs.Missions) - 1; i >= 0 && squadronID == 0; i-- {
			squadronID = rs.Missions[i].SquadronID
		}
	}
	if squadronID == 0 {
		return []domain.Diagnostic{{
			Severity: domain.SeverityInfo,
			Category: domain.DiagAbsentCategory,
			Path:     rs.FileSet.Root,
			Message:  "no squadron id resolvable, personnel catalog skipped",
		}}
	}
	var diags []domain.Diagnostic
	rs.Roster, diags = s.source.LoadRoster(ctx, rs.FileSet, squadronID)
	return diags
}

func (s *Syncer) weatherLookup() WeatherLookup {
	if s.weather == nil {
		return nil
	}
	return s.weather.FindWeather
}

// mergeAnnotations overlays stored records onto the pilot and every roster
// entry. Records are cloned so the model never aliases store-owned memory.
func (s *Syncer) mergeAnnotations(resolution *Resolution) []domain.Diagnostic {
	if s.store == nil {
		return nil
	}
	var diags []domain.Diagnostic

	attach := func(p *domain.Pilot) {
		if p.Serial == 0 {
			return
		}
		record, err := s.store.Get(p.Serial)
		if err != nil {
			diags = append(diags, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Category: domain.DiagStoreCorrupt,
				Message:  fmt.Sprintf("annotation lookup for serial %d: %v", p.Serial, err),
			})
			return
		}
		p.Annotation = record.Clone()
	}

	attach(&resolution.Pilot)
	for i := range resolution.Squadrons {
		roster := resolution.Squadrons[i].Roster
		for j := range roster {
			if roster[j].Serial == resolution.Pilot.Serial {
				roster[j].Annotation = resolution.Pilot.Annotation.Clone()
				roster[j].Stats = resolution.Pilot.Stats
				continue
			}
			attach(&roster[j])
		}
	}
	return diags
}
