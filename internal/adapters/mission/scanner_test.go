package mission

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"skylog/internal/domain"
)

const missionText = `# Mission File Version = 1.0;

Options
{
  Time = 11:30:0;
  Date = 23.4.1917;
  CloudLevel = 900;
  CloudHeight = 400;
  Temperature = -2;
  Pressure = 760;
  Haze = 0.3;
}
`

func writeMission(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindWeatherMatches(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "Werner Voss 1917-04-23.mission", missionText)
	writeMission(t, dir, "Werner Voss 1917-05-01.mission", missionText)

	scanner := NewScanner(dir, nil)
	snapshot, err := scanner.FindWeather("Werner Voss", time.Date(1917, 4, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a snapshot")
	}
	if snapshot.Source != filepath.Join(dir, "Werner Voss 1917-04-23.mission") {
		t.Errorf("matched %s", snapshot.Source)
	}
	if v, ok := snapshot.Get(domain.WeatherTemperature); !ok || v != "-2" {
		t.Errorf("temperature = %q, %v", v, ok)
	}
	if v, ok := snapshot.Get(domain.WeatherCloudLevel); !ok || v != "900" {
		t.Errorf("cloud level = %q, %v", v, ok)
	}
	if _, ok := snapshot.Get(domain.WeatherWindLayers); ok {
		t.Error("absent key should stay absent")
	}
}

func TestFindWeatherUnderscoreSeparatedName(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "Werner Voss_1917-04-23.mission", missionText)
	writeMission(t, dir, "Werner Voss_1917-05-01.mission", missionText)

	scanner := NewScanner(dir, nil)
	snapshot, err := scanner.FindWeather("Werner Voss", time.Date(1917, 4, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a snapshot for an underscore-separated filename")
	}
	if snapshot.Source != filepath.Join(dir, "Werner Voss_1917-04-23.mission") {
		t.Errorf("matched %s", snapshot.Source)
	}
}

func TestFindWeatherNoCandidates(t *testing.T) {
	scanner := NewScanner(t.TempDir(), nil)
	snapshot, err := scanner.FindWeather("Werner Voss", time.Date(1917, 4, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot != nil {
		t.Errorf("expected nil snapshot, got %v", snapshot)
	}
}

func TestFindWeatherMissingDirectory(t *testing.T) {
	scanner := NewScanner(filepath.Join(t.TempDir(), "nope"), nil)
	snapshot, err := scanner.FindWeather("Werner Voss", time.Date(1917, 4, 23, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("missing directory should not error, got %v", err)
	}
	if snapshot != nil {
		t.Errorf("expected nil snapshot, got %v", snapshot)
	}
}

func TestFindWeatherZeroDate(t *testing.T) {
	dir := t.TempDir()
	writeMission(t, dir, "Werner Voss 1917-04-23.mission", missionText)

	scanner := NewScanner(dir, nil)
	snapshot, err := scanner.FindWeather("Werner Voss", time.Time{})
	if err != nil || snapshot != nil {
		t.Errorf("zero date should match nothing, got %v, %v", snapshot, err)
	}
}

func TestResetPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	scanner := NewScanner(dir, nil)

	date := time.Date(1917, 4, 23, 0, 0, 0, 0, time.UTC)
	if snapshot, _ := scanner.FindWeather("Werner Voss", date); snapshot != nil {
		t.Fatal("empty directory should match nothing")
	}

	writeMission(t, dir, "Werner Voss 1917-04-23.mission", missionText)

	// The cached listing is still empty until a reset.
	if snapshot, _ := scanner.FindWeather("Werner Voss", date); snapshot != nil {
		t.Fatal("cache should not see the new file yet")
	}
	scanner.Reset()
	snapshot, err := scanner.FindWeather("Werner Voss", date)
	if err != nil || snapshot == nil {
		t.Fatalf("after reset: %v, %v", snapshot, err)
	}
}
