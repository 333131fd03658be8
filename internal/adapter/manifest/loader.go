package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyManifest = errors.New("manifest lists no vessels")

// Manifest describes the vessels a voyage sets out with.
type Manifest struct {
	Vessels []VesselSpec `yaml:"vessels"`
}

type VesselSpec struct {
	Name     string   `yaml:"name"`
	Crew     []string `yaml:"crew"`
	MaxSpeed float64  `yaml:"max_speed"`
}

func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return Parse(b)
}

func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Vessels) == 0 {
		return nil, ErrEmptyManifest
	}

	for i, v := range m.Vessels {
		if v.Name == "" {
			return nil, fmt.Errorf("parse manifest: vessel %d has no name", i)
		}
	}

	return &m, nil
}
