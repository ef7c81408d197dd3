package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure ValidationService implements the interface.
var _ driving.Validator = (*ValidationService)(nil)

// requiredFiles must exist in the project root for a publishable
// package.
var requiredFiles = []string{
	"README.md",
	"LICENSE",
	"CHANGELOG.md",
	"pyproject.toml",
	"MANIFEST.in",
	"requirements.txt",
}

// manifestIncludes must be referenced by MANIFEST.in.
var manifestIncludes = []string{"README.md", "LICENSE", "CHANGELOG.md"}

// initVersionPattern matches the __version__ assignment in the package
// __init__ file.
var initVersionPattern = regexp.MustCompile(`(?m)^__version__\s*=\s*["']([^"']+)["']`)

// ValidationService checks that the project is properly configured for
// publishing: descriptor completeness, package structure, required
// files, version consistency, dependencies, entry points and manifest
// includes.
type ValidationService struct {
	descriptors driven.DescriptorStore
	config      driven.ConfigStore
}

// NewValidationService creates a new validation service.
func NewValidationService(descriptors driven.DescriptorStore, config driven.ConfigStore) *ValidationService {
	return &ValidationService{descriptors: descriptors, config: config}
}

// Validate runs all validation categories against the project directory.
func (s *ValidationService) Validate(ctx context.Context, projectDir string) (*domain.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	report := &domain.Report{}
	pkg := s.packageName()

	desc := s.checkDescriptor(report, projectDir)
	s.checkStructure(report, projectDir, pkg)
	s.checkFiles(report, projectDir)
	s.checkVersionConsistency(report, projectDir, pkg, desc)
	s.checkDependencies(report, desc)
	s.checkEntryPoints(report, desc)
	s.checkManifest(report, projectDir)

	logger.Info("Validation finished: %d/%d checks passed", report.PassedCount(), report.Total())

	return report, nil
}

// checkDescriptor parses the descriptor and validates its metadata
// keys. Returns the parsed descriptor, or nil when parsing failed.
func (s *ValidationService) checkDescriptor(report *domain.Report, projectDir string) *domain.Descriptor {
	const category = "descriptor"

	path := filepath.Join(projectDir, s.descriptorPath())
	desc, err := s.descriptors.Load(path)
	if err != nil {
		report.Add(category, "parseable", false, err.Error())
		return nil
	}
	report.Add(category, "parseable", true, "")
	report.Add(category, "build-system", desc.HasBuildSystem, "missing build-system table")
	report.Add(category, "name", desc.Name != "", "missing project name")
	report.Add(category, "version", desc.Version != "", "missing version")
	report.Add(category, "description", desc.Description != "", "missing description")
	report.Add(category, "authors", len(desc.Authors) > 0, "missing authors")
	report.Add(category, "license", desc.License != "", "missing license")
	report.Add(category, "readme", desc.Readme != "", "missing readme")
	report.Add(category, "requires-interpreter", desc.RequiresInterpreter != "", "missing interpreter constraint")
	report.Add(category, "dependencies", len(desc.Dependencies) > 0, "missing dependencies")
	report.Add(category, "classifiers", len(desc.Classifiers) > 0, "missing classifiers")
	report.Add(category, "keywords", len(desc.Keywords) > 0, "missing keywords")
	report.Add(category, "urls", len(desc.URLs) > 0, "missing project urls")
	report.Add(category, "scripts", len(desc.Scripts) > 0, "missing script entry points")
	report.Add(category, "optional-dependencies", len(desc.OptionalDependencies) > 0, "missing optional dependencies")

	return desc
}

// checkStructure validates the package directory layout.
func (s *ValidationService) checkStructure(report *domain.Report, projectDir, pkg string) {
	const category = "structure"

	checks := []struct {
		name string
		path string
	}{
		{"package-dir", pkg},
		{"package-init", filepath.Join(pkg, "__init__.py")},
		{"main-module", filepath.Join(pkg, "__main__.py")},
		{"cli-module", filepath.Join(pkg, "cli")},
		{"core-module", filepath.Join(pkg, "core")},
	}

	for _, c := range checks {
		full := filepath.Join(projectDir, c.path)
		_, err := os.Stat(full)
		report.Add(category, c.name, err == nil, fmt.Sprintf("missing %s", c.path))
	}
}

// checkFiles validates that all files the package index needs exist.
func (s *ValidationService) checkFiles(report *domain.Report, projectDir string) {
	const category = "files"

	for _, name := range requiredFiles {
		_, err := os.Stat(filepath.Join(projectDir, name))
		report.Add(category, name, err == nil, "missing required file")
	}
}

// checkVersionConsistency compares the descriptor version with the
// __version__ string in the package __init__ file.
func (s *ValidationService) checkVersionConsistency(report *domain.Report, projectDir, pkg string, desc *domain.Descriptor) {
	const category = "version"

	if desc == nil || desc.Version == "" {
		report.Add(category, "consistency", false, "descriptor version unavailable")
		return
	}

	initPath := filepath.Join(projectDir, pkg, "__init__.py")
	data, err := os.ReadFile(initPath)
	if err != nil {
		report.Add(category, "consistency", false, fmt.Sprintf("cannot read %s", initPath))
		return
	}

	m := initVersionPattern.FindSubmatch(data)
	if m == nil {
		report.Add(category, "consistency", false, "no __version__ in package __init__")
		return
	}

	initVersion := string(m[1])
	if initVersion != desc.Version {
		report.Add(category, "consistency", false,
			fmt.Sprintf("%s: descriptor=%s, __init__=%s", domain.ErrVersionMismatch, desc.Version, initVersion))
		return
	}

	report.Add(category, "consistency", true, "")
}

// checkDependencies verifies the core dependencies are declared.
func (s *ValidationService) checkDependencies(report *domain.Report, desc *domain.Descriptor) {
	const category = "dependencies"

	if desc == nil {
		report.Add(category, "core-dependencies", false, "descriptor unavailable")
		return
	}

	var missing []string
	for _, dep := range domain.CoreDependencies {
		if !desc.HasDependency(dep) {
			missing = append(missing, dep)
		}
	}

	report.Add(category, "core-dependencies", len(missing) == 0,
		fmt.Sprintf("missing critical dependencies: %s", strings.Join(missing, ", ")))
}

// checkEntryPoints verifies both registered command names: the primary
// CLI and the interactive console variant.
func (s *ValidationService) checkEntryPoints(report *domain.Report, desc *domain.Descriptor) {
	const category = "entry-points"

	if desc == nil {
		report.Add(category, "cli", false, "descriptor unavailable")
		report.Add(category, "interactive", false, "descriptor unavailable")
		return
	}

	report.Add(category, "cli", desc.HasScript(domain.EntryPointCLI),
		fmt.Sprintf("missing entry point %q", domain.EntryPointCLI))
	report.Add(category, "interactive", desc.HasScript(domain.EntryPointInteractive),
		fmt.Sprintf("missing entry point %q", domain.EntryPointInteractive))
}

// checkManifest verifies MANIFEST.in references the essential includes.
func (s *ValidationService) checkManifest(report *domain.Report, projectDir string) {
	const category = "manifest"

	data, err := os.ReadFile(filepath.Join(projectDir, "MANIFEST.in"))
	if err != nil {
		report.Add(category, "readable", false, "cannot read MANIFEST.in")
		return
	}
	report.Add(category, "readable", true, "")

	content := string(data)
	for _, include := range manifestIncludes {
		report.Add(category, "includes "+include, strings.Contains(content, include),
			fmt.Sprintf("MANIFEST.in missing %s", include))
	}
}

func (s *ValidationService) packageName() string {
	if pkg := s.config.GetString("project.package"); pkg != "" {
		return pkg
	}
	return "tubeharvest"
}

func (s *ValidationService) descriptorPath() string {
	if p := s.config.GetString("project.descriptor"); p != "" {
		return p
	}
	return "pyproject.toml"
}
