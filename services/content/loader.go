package content

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ObjectGetter reads an object from a storage backend.
type ObjectGetter interface {
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// Parse decodes and validates a YAML catalogue. Unknown fields are errors so
// that typos in hand-edited files surface at load time.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	for key, v := range c.Variants {
		if v != nil {
			v.Key = key
		}
	}
	if c.DefaultVariant == "" && len(c.Variants) == 1 {
		for key := range c.Variants {
			c.DefaultVariant = key
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadEmbedded returns the catalogue compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return Parse(defaultYAML)
}

// LoadFile reads a catalogue from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return Parse(data)
}

// LoadObject reads a catalogue from a storage backend.
func LoadObject(ctx context.Context, getter ObjectGetter, key string) (*Catalog, error) {
	body, _, err := getter.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content object %s: %w", key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content object %s: %w", key, err)
	}
	return Parse(data)
}

// DefaultYAML returns the embedded catalogue source, used by the admin CLI
// to scaffold a content file.
func DefaultYAML() []byte {
	return bytes.Clone(defaultYAML)
}
