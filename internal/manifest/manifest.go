// Package manifest records what went into a woven document. The
// manifest is written next to the output RTF so fragment order and
// provenance survive without re-parsing the RTF itself.
package manifest

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest is the on-disk record of one compile run.
type Manifest struct {
	GeneratedAt time.Time        `yaml:"generated_at"`
	Template    string           `yaml:"template"`
	Placeholder string           `yaml:"placeholder"`
	OutputRTF   string           `yaml:"output_rtf"`
	OutputPDF   string           `yaml:"output_pdf,omitempty"`
	Fragments   []FragmentRecord `yaml:"fragments"`
}

// FragmentRecord describes one fragment in splice order.
type FragmentRecord struct {
	Name    string `yaml:"name"`
	Ordinal int    `yaml:"ordinal"`
	SHA256  string `yaml:"sha256"`
	Cached  bool   `yaml:"cached,omitempty"`
}

// Write saves the manifest to a YAML file at path.
func Write(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously written manifest from disk.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}
