package pwcg

import (
	"context"
	"os"
	"slices"
	"strconv"

	"github.com/antonholmquist/jason"

	"skylog/internal/domain"
)

// LoadAces reads the campaign aces file. Three generations of the format
// exist: a top-level list, a map keyed by serial, and a map wrapped in an
// acesInCampaign envelope.
func (s *Source) LoadAces(ctx context.Context, fs *domain.FileSet) ([]domain.AceEntry, []domain.Diagnostic) {
	if fs.AcesJSON == "" {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "aces file")}
	}

	data, err := os.ReadFile(fs.AcesJSON)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.AcesJSON, err)}
	}
	value, err := jason.NewValueFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(fs.AcesJSON, err)}
	}

	var diags []domain.Diagnostic
	var entries []domain.AceEntry

	add := func(obj *jason.Object, keySerial int64) {
		entry, entryDiags := s.aceEntry(fs.AcesJSON, obj, keySerial)
		if entry != nil {
			entries = append(entries, *entry)
		}
		diags = append(diags, entryDiags...)
	}

	if list, err := value.Array(); err == nil {
		for _, item := range list {
			obj, err := item.Object()
			if err != nil {
				diags = append(diags, schemaDiag(fs.AcesJSON, "non-object ace entry skipped"))
				continue
			}
			add(obj, 0)
		}
		return entries, diags
	}

	obj, err := value.Object()
	if err != nil {
		return nil, append(diags, malformedDiag(fs.AcesJSON, err))
	}
	if inner, err := obj.GetObject("acesInCampaign"); err == nil {
		obj = inner
	}
	// Map iteration order is random; pin a stable order here.
	entryMap := obj.Map()
	keys := make([]string, 0, len(entryMap))
	for key := range entryMap {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		entryObj, err := entryMap[key].Object()
		if err != nil {
			diags = append(diags, schemaDiag(fs.AcesJSON, "non-object ace entry skipped"))
			continue
		}
		keySerial, _ := strconv.ParseInt(key, 10, 64)
		add(entryObj, keySerial)
	}
	return entries, diags
}

func (s *Source) aceEntry(path string, obj *jason.Object, keySerial int64) (*domain.AceEntry, []domain.Diagnostic) {
	entry := domain.AceEntry{Source: path}
	var diags []domain.Diagnostic

	name, ok := firstString(obj, "name", "pilotName")
	if !ok {
		return nil, []domain.Diagnostic{schemaDiag(path, "ace entry without a name skipped")}
	}
	entry.Name = name
	entry.Rank, _ = firstString(obj, "rank")
	entry.Country, _ = firstString(obj, "country", "nationality")
	entry.Squadron, _ = firstString(obj, "squadron", "squadronName")
	entry.SquadronID, _ = firstInt64(obj, "squadronId", "squadronID")
	entry.MissionsFlown, _ = firstCount(obj, "missionFlown", "missionsFlown")

	entry.Serial, _ = firstInt64(obj, "serialNumber", "pilotSerialNumber")
	if entry.Serial == 0 {
		entry.Serial = keySerial
	}

	victories, ok := firstCount(obj, "victories", "airVictories")
	if !ok {
		entry.Partial = true
		diags = append(diags, schemaDiag(path, "ace "+name+" has no victory field"))
	}
	entry.Victories = victories
	return &entry, diags
}
