package domain

import (
	"strings"
)

// EntryPointCLI is the primary command-line entry point the descriptor
// must register.
const EntryPointCLI = "tubeharvest"

// EntryPointInteractive is the interactive console variant entry point.
const EntryPointInteractive = "tubeharvest-gui"

// CoreDependencies are the dependencies the package cannot function
// without. The validator flags a descriptor that omits any of them.
var CoreDependencies = []string{"yt-dlp", "rich", "click"}

// Descriptor is the parsed package descriptor (the project table of the
// TOML build file). Only the fields the release tooling inspects are
// modelled.
type Descriptor struct {
	// Name is the distribution name on the package index.
	Name string

	// Version is the release version string.
	Version string

	// Description is the one-line package summary.
	Description string

	// Authors lists the package authors.
	Authors []Author

	// License is the license expression or identifier.
	License string

	// Readme is the path to the long-description file.
	Readme string

	// RequiresInterpreter is the interpreter version constraint.
	RequiresInterpreter string

	// Dependencies are the runtime dependency constraints.
	Dependencies []string

	// OptionalDependencies maps extras to their dependency constraints.
	OptionalDependencies map[string][]string

	// Classifiers are the trove classifiers.
	Classifiers []string

	// Keywords are the index search keywords.
	Keywords []string

	// URLs maps link labels to project URLs.
	URLs map[string]string

	// Scripts maps installed command names to callables in the package.
	Scripts map[string]string

	// HasBuildSystem reports whether a build-system table was present.
	HasBuildSystem bool
}

// Author identifies a package author.
type Author struct {
	Name  string
	Email string
}

// HasScript reports whether the descriptor registers the named command.
func (d *Descriptor) HasScript(name string) bool {
	_, ok := d.Scripts[name]
	return ok
}

// HasDependency reports whether any dependency constraint mentions the
// given distribution name. Constraints carry version operators, so this
// is a substring match on the constraint text.
func (d *Descriptor) HasDependency(name string) bool {
	for _, dep := range d.Dependencies {
		if strings.Contains(dep, name) {
			return true
		}
	}
	return false
}
