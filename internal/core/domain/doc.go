// Package domain defines the core business entities for releasekit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: The parsed package descriptor
//   - ArtifactSet: Build artifacts produced by one build
//   - PublishPlan / PublishRun: A publish pipeline request and its record
//   - SyncPlan: Planned wiki documentation sync actions
//   - Report: Categorised validation results
//   - WorkflowSpec: CI workflow matrix and lint policy
//   - IssueForm: Structured issue template definition
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
