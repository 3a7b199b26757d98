package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// Loader handles loading and parsing of catalog YAML files
type Loader struct {
	filePath string
}

// NewLoader creates a new catalog loader.
// An empty path loads the embedded demo catalog.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file the loader reads, "" for the embedded catalog
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the catalog
func (l *Loader) Load() (File, error) {
	data := defaultCatalog
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return File{}, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}

	return Parse(data)
}

// Parse decodes catalog YAML
func Parse(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}
	return file, nil
}
