package engine

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dotpi/internal/mood"
	"dotpi/internal/tone"
)

//go:embed templates.yaml
var defaultCatalogYAML []byte

// Catalog holds the canned replies per mood bucket and the tone prefixes.
type Catalog struct {
	Prefixes map[tone.Tone]string   `yaml:"tone_prefixes"`
	Buckets  map[mood.Mood][]string `yaml:"buckets"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog file; an empty path yields the default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for _, m := range mood.All {
		if len(c.Buckets[m]) == 0 {
			return fmt.Errorf("catalog: bucket %q has no templates", m)
		}
	}
	for m := range c.Buckets {
		if !m.Valid() {
			return fmt.Errorf("catalog: unknown bucket %q", m)
		}
	}
	for _, t := range []tone.Tone{tone.Blunt, tone.Empathetic} {
		if c.Prefixes[t] == "" {
			return fmt.Errorf("catalog: tone %q needs a prefix", t)
		}
	}
	for t := range c.Prefixes {
		if !t.Valid() {
			return fmt.Errorf("catalog: unknown tone %q", t)
		}
	}
	return nil
}

// Prefix is empty for Balanced and unknown tones.
func (c *Catalog) Prefix(t tone.Tone) string {
	if t == tone.Balanced {
		return ""
	}
	return c.Prefixes[t]
}

func (c *Catalog) Templates(m mood.Mood) []string {
	return c.Buckets[m]
}
