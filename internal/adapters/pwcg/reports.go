package pwcg

import (
	"context"
	"os"

	"github.com/antonholmquist/jason"

	"skylog/internal/domain"
)

// LoadCombatReports reads the debrief files under the pilot's serial folder.
// Each file is one report; a broken file skips only itself. The context is
// checked before every file read.
func (s *Source) LoadCombatReports(ctx context.Context, fs *domain.FileSet, serial int64) ([]domain.CombatReport, []domain.Diagnostic) {
	files := fs.CombatReports[serial]
	if len(files) == 0 {
		return nil, []domain.Diagnostic{absentDiag(fs.Root, "combat reports")}
	}

	var diags []domain.Diagnostic
	var reports []domain.CombatReport
	for _, path := range files {
		if ctx.Err() != nil {
			return reports, diags
		}
		report, reportDiags := s.loadReport(path, serial)
		diags = append(diags, reportDiags...)
		if report != nil {
			reports = append(reports, *report)
		}
	}
	return reports, diags
}

func (s *Source) loadReport(path string, folderSerial int64) (*domain.CombatReport, []domain.Diagnostic) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}
	obj, err := jason.NewObjectFromBytes(data)
	if err != nil {
		return nil, []domain.Diagnostic{malformedDiag(path, err)}
	}

	var diags []domain.Diagnostic
	report := domain.CombatReport{Source: path}

	report.Serial, _ = firstInt64(obj, "pilotSerialNumber", "serialNumber")
	if report.Serial == 0 {
		report.Serial = folderSerial
	}
	report.PilotName, _ = firstString(obj, "reportPilotName", "pilotName")
	report.Squadron, _ = firstString(obj, "squadron", "squadronName")
	report.Time, _ = firstString(obj, "time")
	report.Aircraft, _ = firstString(obj, "type", "aircraftType")
	report.Duty, _ = firstString(obj, "duty")
	report.Locality, _ = firstString(obj, "locality")
	report.Altitude, _ = firstString(obj, "altitude")
	report.HAReport, _ = firstString(obj, "haReport")
	report.Narrative, _ = firstString(obj, "narrative")

	if raw, ok := firstString(obj, "date"); ok {
		date, err := domain.ParseDate(raw)
		if err != nil {
			report.Partial = true
			diags = append(diags, schemaDiag(path, err.Error()))
		} else {
			report.Date = date
		}
	} else {
		report.Partial = true
		diags = append(diags, schemaDiag(path, "combat report has no date"))
	}

	if pilots, err := obj.GetStringArray("flightPilots"); err == nil {
		report.FlightPilots = pilots
	} else if objs, err := obj.GetObjectArray("flightPilots"); err == nil {
		for _, p := range objs {
			if name, ok := firstString(p, "name", "pilotName"); ok {
				report.FlightPilots = append(report.FlightPilots, name)
			}
		}
	}

	report.Claims = loadClaims(obj)
	return &report, diags
}

// Claims appear as objects with a type, as bare aircraft-name strings, or
// not at all. Unstated categories count as aircraft kills.
func loadClaims(obj *jason.Object) []domain.VictoryClaim {
	var claims []domain.VictoryClaim
	if objs, err := obj.GetObjectArray("claims"); err == nil {
		for _, c := range objs {
			claim := domain.VictoryClaim{}
			claim.Category, _ = firstString(c, "type", "category")
			claim.Aircraft, _ = firstString(c, "aircraft", "name")
			claims = append(claims, claim)
		}
		return claims
	}
	if names, err := obj.GetStringArray("claims"); err == nil {
		for _, name := range names {
			claims = append(claims, domain.VictoryClaim{Aircraft: name})
		}
	}
	return claims
}
