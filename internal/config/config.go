package config

import (
	"os"
	"path/filepath"
)

// Default install locations, overridable through the environment.
const (
	DefaultPWCGRoot = `C:\Program Files (x86)\Pat Wilson Combat Generator\User\Campaigns`
	DefaultGameRoot = `C:\Program Files (x86)\IL-2 Sturmovik Great Battles\data\Missions`
)

// PWCGRoot returns the campaign root from SKYLOG_PWCG_ROOT env var,
// falling back to DefaultPWCGRoot.
func PWCGRoot() string {
	if env := os.Getenv("SKYLOG_PWCG_ROOT"); env != "" {
		return env
	}
	return DefaultPWCGRoot
}

// GameRoot returns the simulator mission directory from SKYLOG_GAME_ROOT
// env var, falling back to DefaultGameRoot.
func GameRoot() string {
	if env := os.Getenv("SKYLOG_GAME_ROOT"); env != "" {
		return env
	}
	return DefaultGameRoot
}

// DataHome returns the directory for skylog's own files (annotation store,
// diary exports). SKYLOG_DATA_HOME overrides; the default follows the user
// config dir convention.
func DataHome() string {
	if env := os.Getenv("SKYLOG_DATA_HOME"); env != "" {
		return env
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "skylog")
	}
	return "skylog-data"
}

// AnnotationDBPath is the annotation store location under DataHome.
func AnnotationDBPath() string {
	return filepath.Join(DataHome(), "annotations.db")
}
