package commands

import (
	"context"
	"fmt"
	"slices"
)

// CampaignLister is the narrow view the list command needs; both the
// campaign source and the syncer satisfy it.
type CampaignLister interface {
	Campaigns() ([]string, error)
}

// ListCampaignsResult contains the discovered campaign directories.
type ListCampaignsResult struct {
	Campaigns []string
}

// ListCampaignsCommand enumerates campaigns under the PWCG root.
type ListCampaignsCommand struct {
	source CampaignLister
}

// NewListCampaignsCommand creates a new ListCampaignsCommand
func NewListCampaignsCommand(source CampaignLister) *ListCampaignsCommand {
	return &ListCampaignsCommand{source: source}
}

// Execute runs the list command
func (c *ListCampaignsCommand) Execute(ctx context.Context) (*ListCampaignsResult, error) {
	campaigns, err := c.source.Campaigns()
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	slices.Sort(campaigns)
	return &ListCampaignsResult{Campaigns: campaigns}, nil
}
