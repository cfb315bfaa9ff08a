package commands

import (
	"context"
	"fmt"

	"skylog/internal/application"
	"skylog/internal/domain"
)

// SyncCampaignResult contains the outcome of one campaign sync.
type SyncCampaignResult struct {
	Model       *domain.CampaignModel
	Diagnostics []domain.Diagnostic
}

// SyncCampaignCommand runs the ingestion pipeline for one campaign.
type SyncCampaignCommand struct {
	syncer   *application.Syncer
	Campaign string
	Progress application.Progress
}

// NewSyncCampaignCommand creates a new SyncCampaignCommand
func NewSyncCampaignCommand(syncer *application.Syncer, campaign string) *SyncCampaignCommand {
	return &SyncCampaignCommand{
		syncer:   syncer,
		Campaign: campaign,
	}
}

// Validate checks if the sync can run
func (c *SyncCampaignCommand) Validate() error {
	if c.Campaign == "" {
		return &application.ValidationError{
			Field:   "campaign",
			Message: "campaign name is required",
		}
	}
	return nil
}

// Execute runs the sync command
func (c *SyncCampaignCommand) Execute(ctx context.Context) (*SyncCampaignResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	model, diags, err := c.syncer.Sync(ctx, c.Campaign, c.Progress)
	if err != nil {
		return nil, fmt.Errorf("failed to sync campaign: %w", err)
	}

	return &SyncCampaignResult{
		Model:       model,
		Diagnostics: diags,
	}, nil
}
