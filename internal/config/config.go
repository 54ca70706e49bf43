package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/match"
)

// Shelter is one adoptable-listings page the engine keeps in sync.
type Shelter struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Matching overrides pieces of the default scoring scheme. Anything left
// empty in the YAML keeps its shipped default, so a config that only bumps
// one weight stays one line long.
type Matching struct {
	Mode          string              `yaml:"mode" json:"mode"`
	Weights       map[string]int      `yaml:"weights" json:"weights"`
	OpenMarkers   map[string][]string `yaml:"open_markers" json:"open_markers"`
	Fractions     *match.Fractions    `yaml:"fractions" json:"fractions"`
	Labels        []match.LabelBand   `yaml:"labels" json:"labels"`
	FallbackLabel string              `yaml:"fallback_label" json:"fallback_label"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Polling struct {
		SyncSeconds  int `yaml:"sync_seconds" json:"sync_seconds"`
		EmailSeconds int `yaml:"email_seconds" json:"email_seconds"`
	} `yaml:"polling" json:"polling"`

	Matching Matching `yaml:"matching" json:"matching"`

	Sync struct {
		Enabled  bool      `yaml:"enabled" json:"enabled"`
		Shelters []Shelter `yaml:"shelters" json:"shelters"`
	} `yaml:"sync" json:"sync"`

	Email struct {
		Enabled          bool     `yaml:"enabled" json:"enabled"`
		IMAPHost         string   `yaml:"imap_host" json:"imap_host"`
		IMAPPort         int      `yaml:"imap_port" json:"imap_port"`
		Username         string   `yaml:"username" json:"username"`
		Mailbox          string   `yaml:"mailbox" json:"mailbox"`
		SearchSubjectAny []string `yaml:"search_subject_any" json:"search_subject_any"`
	} `yaml:"email" json:"email"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Scheme materializes the scoring scheme: the shipped defaults overlaid with
// whatever the config overrides.
func (m Matching) Scheme() match.Scheme {
	s := match.DefaultScheme()
	if m.Mode != "" {
		s.Mode = match.Mode(m.Mode)
	}
	for k, w := range m.Weights {
		s.Weights[match.Criterion(k)] = w
	}
	for k, markers := range m.OpenMarkers {
		s.OpenMarkers[match.Criterion(k)] = markers
	}
	if m.Fractions != nil {
		s.Fractions = *m.Fractions
	}
	if len(m.Labels) > 0 {
		s.Labels = m.Labels
	}
	if m.FallbackLabel != "" {
		s.FallbackLabel = m.FallbackLabel
	}
	return s
}
