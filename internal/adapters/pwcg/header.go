package pwcg

import (
	"context"
	"os"
	"path/filepath"

	"github.com/antonholmquist/jason"
	"go.uber.org/zap"

	"skylog/internal/domain"
)

// LoadCampaign reads the campaign header. The header is the anchor record:
// absence or unparsable content returns nil, everything lesser degrades to
// diagnostics.
func (s *Source) LoadCampaign(ctx context.Context, fs *domain.FileSet) (*domain.Campaign, []domain.Diagnostic) {
	if fs.CampaignJSON == "" {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "campaign header")}
	}

	data, err := os.ReadFile(fs.CampaignJSON)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.CampaignJSON, err)}
	}
	obj, err := jason.NewObjectFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.CampaignJSON, err)}
	}

	var diags []domain.Diagnostic
	campaign := &domain.Campaign{Source: fs.CampaignJSON}

	if name, ok := firstString(obj, "name", "campaignName"); ok {
		campaign.Name = name
	} else {
		// The directory name tracks the campaign name in every PWCG version.
		campaign.Name = filepath.Base(fs.Root)
		diags = append(diags, schemaDiag(fs.CampaignJSON, "header has no name, using directory name"))
	}

	if raw, ok := firstString(obj, "date", "campaignDate"); ok {
		date, err := domain.ParseDate(raw)
		if err != nil {
			diags = append(diags, schemaDiag(fs.CampaignJSON, err.Error()))
		} else {
			campaign.Date = date
		}
	} else {
		diags = append(diags, schemaDiag(fs.CampaignJSON, "header has no campaign date"))
	}

	if serial, ok := firstInt64(obj, "referencePlayerSerialNumber", "playerSerialNumber", "serialNumber"); ok {
		campaign.ReferenceSerial = serial
	} else {
		diags = append(diags, schemaDiag(fs.CampaignJSON, "header has no reference pilot serial"))
	}

	campaign.SquadronID, _ = firstInt64(obj, "squadronId", "squadronID", "referencePlayerSquadronId")
	campaign.Product, _ = firstString(obj, "product", "pwcgProduct")

	s.log.Debug("campaign header loaded",
		zap.String("name", campaign.Name),
		zap.Int64("serial", campaign.ReferenceSerial))
	return campaign, diags
}
