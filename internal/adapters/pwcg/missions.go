package pwcg

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/antonholmquist/jason"

	"skylog/internal/domain"
)

// LoadMissionData reads the per-mission record files. A mission without a
// header is kept as a partial record: its description and participants are
// still worth joining against. The context is checked before every file read.
func (s *Source) LoadMissionData(ctx context.Context, fs *domain.FileSet) ([]domain.MissionRecord, []domain.Diagnostic) {
	if len(fs.MissionData) == 0 {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "mission data")}
	}

	var diags []domain.Diagnostic
	var missions []domain.MissionRecord
	for _, path := range fs.MissionData {
		if ctx.Err() != nil {
			return missions, diags
		}
		mission, missionDiags := s.loadMission(path)
		diags = append(diags, missionDiags...)
		if mission != nil {
			missions = append(missions, *mission)
		}
	}
	return missions, diags
}

func (s *Source) loadMission(path string) (*domain.MissionRecord, []domain.Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}
	obj, err := jason.NewObjectFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}

	var diags []domain.Diagnostic
	mission := domain.MissionRecord{Source: path}
	mission.Description, _ = firstString(obj, "missionDescription", "description")

	header, err := obj.GetObject("missionHeader")
	if err != nil {
		mission.Partial = true
		diags = append(diags, schemaDiag(path, "mission record has no header"))
	} else {
		if raw, ok := firstString(header, "date"); ok {
			date, err := domain.ParseDate(raw)
			if err != nil {
				mission.Partial = true
				diags = append(diags, schemaDiag(path, err.Error()))
			} else {
				mission.Date = date
			}
		} else {
			mission.Partial = true
			diags = append(diags, schemaDiag(path, "mission header has no date"))
		}
		mission.Time, _ = firstString(header, "time")
		mission.Squadron, _ = firstString(header, "squadron", "squadronName")
		mission.SquadronID, _ = firstInt64(header, "squadronId", "squadronID")
		mission.Aircraft, _ = firstString(header, "aircraftType", "type")
		mission.Duty, _ = firstString(header, "duty")
		mission.Airfield, _ = firstString(header, "airfield")
		if alt, ok := firstInt64(header, "altitude"); ok {
			metres := int(alt)
			mission.Altitude = &metres
		}
	}

	mission.Participants = loadParticipants(obj)
	return &mission, diags
}

// missionPlanes maps plane id to its crew entry.
func loadParticipants(obj *jason.Object) []domain.MissionPilot {
	planes, err := obj.GetObject("missionPlanes")
	if err != nil {
		return nil
	}
	var participants []domain.MissionPilot
	for _, item := range planes.Map() {
		plane, err := item.Object()
		if err != nil {
			continue
		}
		pilot := domain.MissionPilot{}
		pilot.Name, _ = firstString(plane, "pilotName", "name")
		pilot.Serial, _ = firstInt64(plane, "pilotSerialNumber", "serialNumber")
		pilot.SquadronID, _ = firstInt64(plane, "squadronId", "squadronID")
		if pilot.Name == "" && pilot.Serial == 0 {
			continue
		}
		participants = append(participants, pilot)
	}
	// Map iteration order is random; pin a stable order here.
	slices.SortFunc(participants, func(a, b domain.MissionPilot) int {
		if a.Serial != b.Serial {
			if a.Serial < b.Serial {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return participants
}
