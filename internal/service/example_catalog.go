package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jengzang/igs-backend-go/internal/floorplan"
)

// CatalogFile is the name of the example index inside the examples root
const CatalogFile = "examples.yaml"

// maxExampleFileSize bounds a single fetched example file
const maxExampleFileSize = 64 << 20

// Example is one bundled dataset. Paths are relative to the example's folder.
type Example struct {
	Name      string   `yaml:"name" json:"name"`
	Title     string   `yaml:"title" json:"title"`
	Floorplan string   `yaml:"floorplan" json:"floorplan"`
	Files     []string `yaml:"files" json:"files"`
	Youtube   string   `yaml:"youtube" json:"youtube,omitempty"`
}

// Catalog lists the available examples
type Catalog struct {
	Examples []Example `yaml:"examples" json:"examples"`
}

// Find returns the example with the given name
func (c *Catalog) Find(name string) (*Example, error) {
	for i := range c.Examples {
		if c.Examples[i].Name == name {
			return &c.Examples[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrExampleNotFound, name)
}

// ExampleSource reads example files from a base URL when one is configured,
// otherwise from a local directory
type ExampleSource struct {
	dir     string
	baseURL string
	loader  *floorplan.Loader
}

// NewExampleSource creates an example source
func NewExampleSource(dir, baseURL string, loader *floorplan.Loader) *ExampleSource {
	return &ExampleSource{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), loader: loader}
}

// Catalog reads and parses the example index
func (s *ExampleSource) Catalog(ctx context.Context) (*Catalog, error) {
	data, err := s.Read(ctx, CatalogFile)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse example catalog: %w", err)
	}
	return &c, nil
}

// Read returns the content of a slash-separated path below the examples root
func (s *ExampleSource) Read(ctx context.Context, rel string) ([]byte, error) {
	rel = path.Clean("/" + rel)[1:]
	if rel == "" {
		return nil, fmt.Errorf("empty example path")
	}

	if s.baseURL != "" {
		body, err := s.loader.Fetch(ctx, s.baseURL+"/"+rel)
		if err != nil {
			return nil, err
		}
		defer body.Close()
		data, err := io.ReadAll(io.LimitReader(body, maxExampleFileSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", floorplan.ErrNetworkFetch, rel, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("failed to read example file: %w", err)
	}
	return data, nil
}
