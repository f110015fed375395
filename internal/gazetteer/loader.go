package gazetteer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// placesFile is the YAML document shape a deployment can provide to
// override the built-in gazetteer.
type placesFile struct {
	Places []Place `yaml:"places"`
}

// Loader reads a gazetteer from a YAML file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the places file.
func (l *Loader) Load() ([]Place, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read places file: %w", err)
	}

	var file placesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse places yaml: %w", err)
	}
	if len(file.Places) == 0 {
		return nil, fmt.Errorf("places file %s contains no places", l.filePath)
	}

	return file.Places, nil
}
