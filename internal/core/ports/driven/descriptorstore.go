package driven

import "github.com/tubeharvest/releasekit/internal/core/domain"

// DescriptorStore reads the package descriptor from the project tree.
type DescriptorStore interface {
	// Load parses the descriptor file.
	Load(path string) (*domain.Descriptor, error)

	// RawVersion extracts the version string from the descriptor text by
	// pattern matching, without a full parse. This mirrors how the wiki
	// sync tooling reads the version and survives descriptor files the
	// parser rejects.
	RawVersion(path string) (string, error)
}
