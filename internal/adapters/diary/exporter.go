// Package diary renders a campaign model as a pilot's logbook in markdown.
package diary

import (
	"fmt"
	"hash/fnv"
	"strings"

	"skylog/internal/domain"
)

// Entry phrasings rotate so consecutive pages do not all start alike. The
// pick is a hash of the mission date, never randomness: exporting the same
// campaign twice produces byte-identical output.
var sortieOpeners = []string{
	"Took off on a %s sortie.",
	"Flew %s today.",
	"Orders came through for %s.",
	"Another %s mission in the book.",
}

var quietOpeners = []string{
	"No flying today.",
	"Grounded. The squadron waits.",
	"A quiet day on the field.",
}

// Export renders the whole campaign as one markdown document.
func Export(model *domain.CampaignModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Logbook of %s\n\n", model.Pilot.Name)
	if model.Pilot.Squadron != "" {
		fmt.Fprintf(&b, "%s, %s", model.Pilot.Rank, model.Pilot.Squadron)
		b.WriteString("\n\n")
	}
	writeSummary(&b, model)

	for i := range model.Missions {
		writeMission(&b, &model.Missions[i])
	}

	writeAchievements(&b, model.Achievements)
	return b.String()
}

func writeSummary(b *strings.Builder, model *domain.CampaignModel) {
	stats := model.Pilot.Stats
	fmt.Fprintf(b, "Sorties: %d  Victories: %d  Ratio: %.2f\n\n",
		stats.Sorties, stats.Victories, stats.Ratio)
	if date := domain.FormatDate(model.Campaign.Date); date != "" {
		fmt.Fprintf(b, "Campaign date: %s\n\n", date)
	}
	b.WriteString("---\n\n")
}

func writeMission(b *strings.Builder, mission *domain.MissionRecord) {
	fmt.Fprintf(b, "## %s", domain.FormatDate(mission.Date))
	if mission.Time != "" {
		fmt.Fprintf(b, " %s", mission.Time)
	}
	b.WriteString("\n\n")

	duty := mission.Duty
	if duty == "" {
		duty = "a patrol"
	}
	if mission.Report != nil {
		fmt.Fprintf(b, "%s\n\n", pick(sortieOpeners, mission.Date.Format("20060102"), duty))
	} else {
		fmt.Fprintf(b, "%s\n\n", pickPlain(quietOpeners, mission.Date.Format("20060102")))
	}

	if mission.Airfield != "" {
		fmt.Fprintf(b, "Up from %s", mission.Airfield)
		if mission.Aircraft != "" {
			fmt.Fprintf(b, " in the %s", mission.Aircraft)
		}
		b.WriteString(".\n\n")
	}

	if weather := describeWeather(mission.Weather); weather != "" {
		fmt.Fprintf(b, "%s\n\n", weather)
	}

	if mission.Report != nil {
		if mission.Report.Narrative != "" {
			fmt.Fprintf(b, "%s\n\n", strings.TrimSpace(mission.Report.Narrative))
		}
		for _, claim := range mission.Report.Claims {
			target := claim.Aircraft
			if target == "" {
				target = "an enemy machine"
			}
			fmt.Fprintf(b, "Claimed %s.\n", target)
		}
		if len(mission.Report.Claims) > 0 {
			b.WriteString("\n")
		}
	}

	if len(mission.Squadmates) > 0 {
		fmt.Fprintf(b, "Flew with %s.\n\n", strings.Join(mission.Squadmates, ", "))
	}
}

func writeAchievements(b *strings.Builder, achievements []domain.Achievement) {
	var unlocked []domain.Achievement
	for _, a := range achievements {
		if a.Unlocked {
			unlocked = append(unlocked, a)
		}
	}
	if len(unlocked) == 0 {
		return
	}
	b.WriteString("---\n\n## Distinctions\n\n")
	for _, a := range unlocked {
		fmt.Fprintf(b, "- %s: %s\n", a.Title, a.Description)
	}
}

func describeWeather(w *domain.WeatherSnapshot) string {
	if w == nil {
		return ""
	}
	var parts []string
	if v, ok := w.Get(domain.WeatherCloudLevel); ok {
		parts = append(parts, "cloud at "+v)
	}
	if v, ok := w.Get(domain.WeatherTemperature); ok {
		parts = append(parts, v+" degrees")
	}
	if v, ok := w.Get(domain.WeatherHaze); ok {
		parts = append(parts, "haze "+v)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Weather: " + strings.Join(parts, ", ") + "."
}

func pick(variants []string, key, arg string) string {
	return fmt.Sprintf(pickPlain(variants, key), arg)
}

func pickPlain(variants []string, key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return variants[h.Sum32()%uint32(len(variants))]
}
