package domain

import (
	"path/filepath"
	"strings"
)

// ArtifactKind classifies a build artifact.
type ArtifactKind string

const (
	// ArtifactWheel is a built (binary) distribution.
	ArtifactWheel ArtifactKind = "wheel"

	// ArtifactSDist is a source distribution archive.
	ArtifactSDist ArtifactKind = "sdist"

	// ArtifactUnknown is anything else found in the dist directory.
	ArtifactUnknown ArtifactKind = "unknown"
)

// Artifact is a single file produced by the build step.
type Artifact struct {
	// Path is the artifact location on disk.
	Path string

	// Kind classifies the artifact.
	Kind ArtifactKind

	// Size is the file size in bytes.
	Size int64
}

// Name returns the artifact file name.
func (a Artifact) Name() string {
	return filepath.Base(a.Path)
}

// ClassifyArtifact determines the artifact kind from its file name.
func ClassifyArtifact(path string) ArtifactKind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".whl"):
		return ArtifactWheel
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".zip"):
		return ArtifactSDist
	default:
		return ArtifactUnknown
	}
}

// ArtifactSet is the collection of artifacts produced by one build.
type ArtifactSet struct {
	Artifacts []Artifact
}

// HasWheel reports whether the set contains a built distribution.
func (s ArtifactSet) HasWheel() bool {
	return s.count(ArtifactWheel) > 0
}

// HasSDist reports whether the set contains a source distribution.
func (s ArtifactSet) HasSDist() bool {
	return s.count(ArtifactSDist) > 0
}

// Complete reports whether the set is uploadable: at least one wheel and
// at least one source distribution.
func (s ArtifactSet) Complete() bool {
	return s.HasWheel() && s.HasSDist()
}

// Uploadable returns the artifacts that should be uploaded, excluding
// anything unclassified.
func (s ArtifactSet) Uploadable() []Artifact {
	out := make([]Artifact, 0, len(s.Artifacts))
	for _, a := range s.Artifacts {
		if a.Kind != ArtifactUnknown {
			out = append(out, a)
		}
	}
	return out
}

func (s ArtifactSet) count(kind ArtifactKind) int {
	n := 0
	for _, a := range s.Artifacts {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
