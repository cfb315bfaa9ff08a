// Package pwcg reads PWCG campaign directories: locating the per-campaign
// record files and loading them tolerantly across schema generations.
package pwcg

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"skylog/internal/application"
	"skylog/internal/domain"
)

// Source reads campaigns below a single PWCG user root.
type Source struct {
	root string
	log  *zap.Logger
}

func NewSource(root string, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{root: root, log: log}
}

// Campaigns lists the directories under the root. A file at the top level
// is not a campaign and is skipped silently.
func (s *Source) Campaigns() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &application.PathInvalidError{Path: s.root, Err: err}
	}
	var campaigns []string
	for _, entry := range entries {
		if entry.IsDir() {
			campaigns = append(campaigns, entry.Name())
		}
	}
	return campaigns, nil
}

// Locate resolves the file set of one campaign without opening any file.
// Only an unreadable campaign directory fails; every deeper absence shows
// up as an empty entry and is handled by the loaders.
func (s *Source) Locate(campaign string) (*domain.FileSet, error) {
	root := filepath.Join(s.root, campaign)
	info, err := os.Stat(root)
	if err != nil {
		return nil, &application.PathInvalidError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &application.PathInvalidError{Path: root, Err: errors.New("not a directory")}
	}

	fs := &domain.FileSet{
		Root:          root,
		CombatReports: map[int64][]string{},
		Personnel:     map[int64]string{},
	}
	fs.CampaignJSON = existing(filepath.Join(root, "Campaign.json"))
	fs.AcesJSON = existing(filepath.Join(root, "CampaignAces.json"))
	fs.LogJSON = existing(filepath.Join(root, "CampaignLog.json"))

	s.locateCombatReports(fs, filepath.Join(root, "CombatReports"))
	s.locateMissionData(fs, filepath.Join(root, "MissionData"))
	s.locatePersonnel(fs, filepath.Join(root, "Personnel"))

	s.log.Debug("campaign located",
		zap.String("campaign", campaign),
		zap.Int("missionFiles", len(fs.MissionData)),
		zap.Int("reportFolders", len(fs.CombatReports)))
	return fs, nil
}

// CombatReports/<pilot serial>/<report>.json
func (s *Source) locateCombatReports(fs *domain.FileSet, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		serial, err := strconv.ParseInt(entry.Name(), 10, 64)
		if err != nil {
			continue
		}
		files, err := os.ReadDir(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		for _, file := range files {
			if jsonFile(file) {
				fs.CombatReports[serial] = append(fs.CombatReports[serial],
					filepath.Join(dir, entry.Name(), file.Name()))
			}
		}
	}
}

func (s *Source) locateMissionData(fs *domain.FileSet, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if jsonFile(entry) {
			fs.MissionData = append(fs.MissionData, filepath.Join(dir, entry.Name()))
		}
	}
}

// Personnel/<squadron id>.json
func (s *Source) locatePersonnel(fs *domain.FileSet, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !jsonFile(entry) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		id, err := strconv.ParseInt(stem, 10, 64)
		if err != nil {
			continue
		}
		fs.Personnel[id] = filepath.Join(dir, entry.Name())
	}
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func jsonFile(entry os.DirEntry) bool {
	return !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json")
}
