package domain

import "slices"

// CategoryAircraft is the claim category assumed when a report does not
// distinguish targets.
const CategoryAircraft = "aircraft"

// PilotStats are fully recomputed from source records on every sync.
type PilotStats struct {
	Sorties             int
	Victories           int
	VictoriesByCategory map[string]int
	Losses              int
	Ratio               float64
}

// ComputeStats derives the tracked pilot's statistics from the resolved
// mission list. A sortie is a mission with an attached combat report.
func ComputeStats(missions []MissionRecord) PilotStats {
	stats := PilotStats{VictoriesByCategory: map[string]int{}}
	for i := range missions {
		report := missions[i].Report
		if report == nil {
			continue
		}
		stats.Sorties++
		for _, claim := range report.Claims {
			category := claim.Category
			if category == "" {
				category = CategoryAircraft
			}
			stats.Victories++
			stats.VictoriesByCategory[category]++
		}
	}
	stats.Ratio = ratio(stats.Victories, stats.Sorties)
	return stats
}

// RosterStats derives squadron-level totals from a roster.
func RosterStats(roster []RosterEntry) (victories, losses int) {
	for _, entry := range roster {
		victories += entry.Victories
		if entry.Status.Lost() {
			losses++
		}
	}
	return victories, losses
}

// RankAces ranks aces by victory count descending. Ties break by serial
// number ascending; entries without a serial sort after those with one, by
// name, so the order is a deterministic total order.
func RankAces(entries []AceEntry) []Ace {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b AceEntry) int {
		if a.Victories != b.Victories {
			return b.Victories - a.Victories
		}
		switch {
		case a.Serial != 0 && b.Serial != 0:
			switch {
			case a.Serial < b.Serial:
				return -1
			case a.Serial > b.Serial:
				return 1
			}
			return 0
		case a.Serial != 0:
			return -1
		case b.Serial != 0:
			return 1
		}
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	aces := make([]Ace, 0, len(sorted))
	for i, entry := range sorted {
		aces = append(aces, Ace{
			Position:  i + 1,
			Serial:    entry.Serial,
			Name:      entry.Name,
			Rank:      entry.Rank,
			Squadron:  entry.Squadron,
			Victories: entry.Victories,
		})
	}
	return aces
}

// TotalVictories sums ace victories, used to cross-check aggregation
// against the aces file.
func TotalVictories(entries []AceEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Victories
	}
	return total
}

func ratio(victories, sorties int) float64 {
	if sorties < 1 {
		sorties = 1
	}
	return float64(victories) / float64(sorties)
}
