package pwcg

import (
	"context"
	"os"
	"slices"

	"github.com/antonholmquist/jason"

	"skylog/internal/domain"
)

// LoadLog reads the campaign log. Entries come either as a flat list or
// grouped by date under a campaignLogsByDate envelope; both collapse to the
// same entry shape here and the resolver re-sorts them anyway.
func (s *Source) LoadLog(ctx context.Context, fs *domain.FileSet) ([]domain.LogEntry, []domain.Diagnostic) {
	if fs.LogJSON == "" {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "campaign log")}
	}

	data, err := os.ReadFile(fs.LogJSON)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.LogJSON, err)}
	}
	value, err := jason.NewValueFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.LogJSON, err)}
	}

	var diags []domain.Diagnostic
	var entries []domain.LogEntry

	if list, err := value.Array(); err == nil {
		for _, item := range list {
			obj, err := item.Object()
			if err != nil {
				diags = append(diags, schemaDiag(fs.LogJSON, "non-object log entry skipped"))
				continue
			}
			entry, entryDiags := s.logEntry(fs.LogJSON, obj, "")
			if entry != nil {
				entries = append(entries, *entry)
			}
			diags = append(diags, entryDiags...)
		}
		return entries, diags
	}

	obj, err := value.Object()
	if err != nil {
		return nil, append(diags, malformedDiag(fs.LogJSON, err))
	}
	byDate, err := obj.GetObject("campaignLogsByDate")
	if err != nil {
		return nil, append(diags, schemaDiag(fs.LogJSON, "log has neither a list nor campaignLogsByDate"))
	}
	// Map iteration order is random; pin a stable order here. Date keys are
	// YYYYMMDD, so the string sort is also chronological.
	groups := byDate.Map()
	dateKeys := make([]string, 0, len(groups))
	for dateKey := range groups {
		dateKeys = append(dateKeys, dateKey)
	}
	slices.Sort(dateKeys)
	for _, dateKey := range dateKeys {
		groupObj, err := groups[dateKey].Object()
		if err != nil {
			diags = append(diags, schemaDiag(fs.LogJSON, "non-object log group skipped"))
			continue
		}
		logs, err := groupObj.GetObjectArray("logs")
		if err != nil {
			diags = append(diags, schemaDiag(fs.LogJSON, "log group without logs list skipped"))
			continue
		}
		for _, logObj := range logs {
			entry, entryDiags := s.logEntry(fs.LogJSON, logObj, dateKey)
			if entry != nil {
				entries = append(entries, *entry)
			}
			diags = append(diags, entryDiags...)
		}
	}
	return entries, diags
}

// fallbackDate carries the group's map key for grouped logs whose entries
// omit their own date.
func (s *Source) logEntry(path string, obj *jason.Object, fallbackDate string) (*domain.LogEntry, []domain.Diagnostic) {
	entry := domain.LogEntry{Source: path}

	text, ok := firstString(obj, "log", "text", "entry")
	if !ok {
		return nil, []domain.Diagnostic{schemaDiag(path, "log entry without text skipped")}
	}
	entry.Text = text
	entry.SquadronID, _ = firstInt64(obj, "squadronId", "squadronID")

	raw, ok := firstString(obj, "date")
	if !ok {
		raw = fallbackDate
	}
	if raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			return &entry, []domain.Diagnostic{schemaDiag(path, err.Error())}
		}
		entry.Date = date
	}
	return &entry, nil
}
