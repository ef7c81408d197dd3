// Package descriptor reads the package descriptor (pyproject-style
// TOML) used by the release tooling.
package descriptor

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DescriptorStore = (*Store)(nil)

// versionPattern matches the version assignment in the project table.
// The wiki sync path reads the version this way, by text matching, so
// it works even when the descriptor has unrelated parse problems.
var versionPattern = regexp.MustCompile(`(?m)^version\s*=\s*["']([^"']+)["']`)

// Store is a TOML-backed implementation of driven.DescriptorStore.
type Store struct{}

// NewStore creates a new descriptor store.
func NewStore() *Store {
	return &Store{}
}

// descriptorFile mirrors the TOML layout of the build file.
type descriptorFile struct {
	BuildSystem map[string]any `toml:"build-system"`
	Project     projectTable   `toml:"project"`
}

type projectTable struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	Description          string              `toml:"description"`
	Authors              []authorTable       `toml:"authors"`
	License              any                 `toml:"license"`
	Readme               string              `toml:"readme"`
	RequiresPython       string              `toml:"requires-python"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	Classifiers          []string            `toml:"classifiers"`
	Keywords             []string            `toml:"keywords"`
	URLs                 map[string]string   `toml:"urls"`
	Scripts              map[string]string   `toml:"scripts"`
}

type authorTable struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// licenseText accepts both the string form (`license = "MIT"`) and the
// table form (`license = { text = "MIT" }`).
func licenseText(v any) string {
	switch l := v.(type) {
	case string:
		return l
	case map[string]any:
		if text, ok := l["text"].(string); ok && text != "" {
			return text
		}
		if file, ok := l["file"].(string); ok {
			return file
		}
	}
	return ""
}

// Load parses the descriptor file.
func (s *Store) Load(path string) (*domain.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDescriptorInvalid, err)
	}

	var file descriptorFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDescriptorInvalid, err)
	}

	p := file.Project
	desc := &domain.Descriptor{
		Name:                 p.Name,
		Version:              p.Version,
		Description:          p.Description,
		License:              licenseText(p.License),
		Readme:               p.Readme,
		RequiresInterpreter:  p.RequiresPython,
		Dependencies:         p.Dependencies,
		OptionalDependencies: p.OptionalDependencies,
		Classifiers:          p.Classifiers,
		Keywords:             p.Keywords,
		URLs:                 p.URLs,
		Scripts:              p.Scripts,
		HasBuildSystem:       len(file.BuildSystem) > 0,
	}
	for _, a := range p.Authors {
		desc.Authors = append(desc.Authors, domain.Author{Name: a.Name, Email: a.Email})
	}

	return desc, nil
}

// RawVersion extracts the version string by pattern matching.
func (s *Store) RawVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDescriptorInvalid, err)
	}

	m := versionPattern.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("%w: no version assignment in %s", domain.ErrDescriptorInvalid, path)
	}
	return string(m[1]), nil
}
