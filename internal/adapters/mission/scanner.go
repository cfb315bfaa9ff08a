// Package mission matches campaign missions against the simulator's own
// .mission text files and extracts their weather block.
package mission

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"skylog/internal/domain"
)

// Scanner finds weather data in a directory of .mission files. The file
// listing is scanned once and cached; Reset drops the cache.
type Scanner struct {
	root string
	log  *zap.Logger

	mu      sync.Mutex
	stems   []string // basenames without extension
	keys    []string // stems with separators flattened, same index
	paths   []string // full paths, same index
	scanned bool
}

func NewScanner(root string, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{root: root, log: log}
}

// FindWeather fuzzy-matches the pilot name and mission date against the
// candidate filenames. No match is a valid outcome and returns (nil, nil);
// only an unreadable matched file is an error.
func (s *Scanner) FindWeather(pilotName string, date time.Time) (*domain.WeatherSnapshot, error) {
	stems, keys, paths, err := s.load()
	if err != nil {
		// An absent game directory just means no weather anywhere.
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(keys) == 0 || date.IsZero() {
		return nil, nil
	}

	query := flatten(pilotName + " " + date.Format("2006-01-02"))
	matches := fuzzy.Find(query, keys)
	if len(matches) == 0 {
		return nil, nil
	}

	// Equal scores pick the lexicographically smallest name so repeated
	// runs agree.
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score != best.Score {
			break
		}
		if stems[m.Index] < stems[best.Index] {
			best = m
		}
	}

	path := paths[best.Index]
	snapshot, err := parseWeather(path)
	if err != nil {
		return nil, err
	}
	s.log.Debug("weather matched",
		zap.String("query", query),
		zap.String("file", filepath.Base(path)))
	return snapshot, nil
}

// Reset drops the cached listing so the next lookup rescans the directory.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stems = nil
	s.keys = nil
	s.paths = nil
	s.scanned = false
}

func (s *Scanner) load() ([]string, []string, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanned {
		return s.stems, s.keys, s.paths, nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, nil, nil, err
	}
	s.stems = nil
	s.keys = nil
	s.paths = nil
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mission") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		s.stems = append(s.stems, stem)
		s.keys = append(s.keys, flatten(stem))
		s.paths = append(s.paths, filepath.Join(s.root, entry.Name()))
	}
	s.scanned = true
	s.log.Debug("mission files scanned",
		zap.String("root", s.root),
		zap.Int("count", len(s.stems)))
	return s.stems, s.keys, s.paths, nil
}

// flatten unifies the separators PWCG mixes between pilot name and date
// ("Werner Voss_1917-04-23", "Werner Voss 1917-04-23") so the query and
// the filename always agree on word boundaries.
func flatten(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// .mission files are flat "Key = value;" text. One expression per known
// key; keys the file omits stay absent from the snapshot.
var weatherPatterns = buildWeatherPatterns()

func buildWeatherPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(domain.WeatherKeys))
	for _, key := range domain.WeatherKeys {
		patterns[key] = regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*=\s*([^;\r\n]+)`)
	}
	return patterns
}

func parseWeather(path string) (*domain.WeatherSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := string(data)

	fields := map[string]string{}
	for _, key := range domain.WeatherKeys {
		if m := weatherPatterns[key].FindStringSubmatch(text); m != nil {
			value := strings.TrimSpace(m[1])
			value = strings.Trim(value, `"`)
			if value != "" {
				fields[key] = value
			}
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &domain.WeatherSnapshot{Source: path, Fields: fields}, nil
}
