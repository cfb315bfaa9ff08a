package domain

// Achievement is a career milestone evaluated from the aggregated stats.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Unlocked    bool
}

const (
	AchievementFirstVictory = "first_victory"
	AchievementAce          = "ace"
	AchievementVeteran      = "veteran"
)

// EvaluateAchievements returns every known achievement with its unlock
// state for the given stats. The full list is always returned so the
// presentation layer can show locked ones too.
func EvaluateAchievements(stats PilotStats) []Achievement {
	return []Achievement{
		{
			ID:          AchievementFirstVictory,
			Title:       "First Victory",
			Description: "Scored the first aerial victory.",
			Unlocked:    stats.Victories >= 1,
		},
		{
			ID:          AchievementAce,
			Title:       "Campaign Ace",
			Description: "Reached 5 aerial victories.",
			Unlocked:    stats.Victories >= 5,
		},
		{
			ID:          AchievementVeteran,
			Title:       "Veteran of 50 Missions",
			Description: "Survived 50 sorties.",
			Unlocked:    stats.Sorties >= 50,
		},
	}
}
