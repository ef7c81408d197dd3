package domain

import "fmt"

// Release describes a GitHub release created for a production publish.
type Release struct {
	// Tag is the git tag, derived from the descriptor version.
	Tag string

	// Name is the release display name.
	Name string

	// Body is the release notes text.
	Body string

	// Prerelease marks the release as a prerelease.
	Prerelease bool
}

// ReleaseForVersion builds the standard release for a version string.
func ReleaseForVersion(version string) Release {
	return Release{
		Tag:  "v" + version,
		Name: fmt.Sprintf("TubeHarvest v%s", version),
		Body: fmt.Sprintf("Release v%s. See CHANGELOG.md for details.", version),
	}
}
