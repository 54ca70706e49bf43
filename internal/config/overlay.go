package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SheltersFile is the optional standalone shelters list (shelters.yml). It
// lets an operator manage the feed roster without touching the main config.
type SheltersFile struct {
	Shelters []Shelter `yaml:"shelters"`
}

// OverlayShelters replaces cfg's shelter roster with the contents of
// sheltersPath when that file exists. A missing file is not an error.
func OverlayShelters(cfg *Config, sheltersPath string) error {
	b, err := os.ReadFile(sheltersPath)
	if err != nil {
		return nil
	}

	var sf SheltersFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Shelters) > 0 {
		cfg.Sync.Shelters = sf.Shelters
	}
	return nil
}
