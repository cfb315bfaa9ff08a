package pwcg

import (
	"context"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/antonholmquist/jason"

	"skylog/internal/domain"
)

// Container keys the personnel catalog has used, newest first.
var rosterContainers = []string{
	"squadronMembersWithAces",
	"squadronMembers",
	"pilots",
	"members",
	"personnel",
}

// LoadRoster reads the personnel catalog for one squadron. The pilots sit
// in a serial-keyed map under one of several historical container keys, or
// at the top level in the oldest files.
func (s *Source) LoadRoster(ctx context.Context, fs *domain.FileSet, squadronID int64) ([]domain.RosterEntry, []domain.Diagnostic) {
	path := fs.Personnel[squadronID]
	if path == "" {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "personnel catalog")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}
	obj, err := jason.NewObjectFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}

	container := obj
	for _, key := range rosterContainers {
		if inner, err := obj.GetObject(key); err == nil {
			container = inner
			break
		}
	}

	var diags []domain.Diagnostic
	var roster []domain.RosterEntry
	for key, item := range container.Map() {
		pilotObj, err := item.Object()
		if err != nil {
			continue
		}
		entry, entryDiags := s.rosterEntry(path, pilotObj, key)
		diags = append(diags, entryDiags...)
		if entry != nil {
			roster = append(roster, *entry)
		}
	}
	if len(roster) == 0 {
		diags = append(diags, schemaDiag(path, "personnel catalog holds no pilot records"))
	}

	slices.SortFunc(roster, func(a, b domain.RosterEntry) int {
		if a.Serial != b.Serial {
			if a.Serial < b.Serial {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return roster, diags
}

func (s *Source) rosterEntry(path string, obj *jason.Object, key string) (*domain.RosterEntry, []domain.Diagnostic) {
	entry := domain.RosterEntry{Source: path}
	var diags []domain.Diagnostic

	name, ok := firstString(obj, "name", "pilotName")
	if !ok {
		return nil, []domain.Diagnostic{schemaDiag(path, "roster entry without a name skipped")}
	}
	entry.Name = name
	entry.Rank, _ = firstString(obj, "rank")
	entry.MissionsFlown, _ = firstCount(obj, "missionFlown", "missionsFlown")
	entry.Victories, _ = firstCount(obj, "victories", "airVictories")

	entry.Serial, _ = firstInt64(obj, "serialNumber", "pilotSerialNumber")
	if entry.Serial == 0 {
		entry.Serial, _ = strconv.ParseInt(key, 10, 64)
	}
	if entry.Serial == 0 {
		entry.Partial = true
		diags = append(diags, schemaDiag(path, "roster entry "+name+" has no serial"))
	}

	if status, ok := firstInt64(obj, "pilotActiveStatus", "activeStatus"); ok {
		if status >= int64(domain.StatusActive) && status <= int64(domain.StatusTransferred) {
			entry.Status = domain.PilotStatus(status)
		} else {
			entry.Partial = true
			diags = append(diags, schemaDiag(path, "roster entry "+name+" has unknown status "+strconv.FormatInt(status, 10)))
		}
	}
	return &entry, diags
}
