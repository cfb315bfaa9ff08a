package ports

import (
	"time"

	"skylog/internal/domain"
)

// WeatherSource matches campaign missions against the simulator's own
// mission files. Absence of a match is an expected outcome, not an error:
// FindWeather returns (nil, nil) when no candidate file fits.
type WeatherSource interface {
	FindWeather(pilotName string, date time.Time) (*domain.WeatherSnapshot, error)

	// Reset restarts the candidate scan so the next lookup sees the
	// directory's current contents.
	Reset()
}
