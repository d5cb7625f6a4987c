package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// worldFile is the YAML layout of a map:
//
//	areas:
//	  - name: Australia
//	    bonus: 2
//	    territories: [Indonesia, New Guinea]
//	connections:
//	  - Indonesia--New Guinea
type worldFile struct {
	Areas       []AreaDef `yaml:"areas"`
	Connections []string  `yaml:"connections"`
}

// ParseWorld decodes a YAML map description.
func ParseWorld(data []byte) (*World, error) {
	var wf worldFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	w, err := NewWorld(wf.Areas, wf.Connections)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return w, nil
}

// LoadWorldFile reads a YAML map from disk.
func LoadWorldFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	return ParseWorld(data)
}
