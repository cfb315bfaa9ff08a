package ports

import (
	"context"

	"skylog/internal/domain"
)

// CampaignSource locates and loads the record files of PWCG campaigns.
// Loaders are tolerant: recovered conditions come back as diagnostics and
// never abort a load; only Locate can fail hard (unreadable campaign dir).
// The context is checked between file reads; a cancelled load returns what
// it has so far and the caller decides whether to discard it.
type CampaignSource interface {
	// Campaigns enumerates the campaign directories under the PWCG root.
	Campaigns() ([]string, error)

	// Locate resolves the expected file set for a campaign without opening
	// any file. Deeper absences are reported as empty entries in the set.
	Locate(campaign string) (*domain.FileSet, error)

	// LoadCampaign reads the campaign header. Returns nil when the header
	// file is absent.
	LoadCampaign(ctx context.Context, fs *domain.FileSet) (*domain.Campaign, []domain.Diagnostic)

	LoadAces(ctx context.Context, fs *domain.FileSet) ([]domain.AceEntry, []domain.Diagnostic)
	LoadLog(ctx context.Context, fs *domain.FileSet) ([]domain.LogEntry, []domain.Diagnostic)
	LoadCombatReports(ctx context.Context, fs *domain.FileSet, serial int64) ([]domain.CombatReport, []domain.Diagnostic)
	LoadMissionData(ctx context.Context, fs *domain.FileSet) ([]domain.MissionRecord, []domain.Diagnostic)
	LoadRoster(ctx context.Context, fs *domain.FileSet, squadronID int64) ([]domain.RosterEntry, []domain.Diagnostic)
}
