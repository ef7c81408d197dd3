// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Runner: Executes external build and git tooling
//   - IndexClient: Talks to the package index (check + upload)
//   - WikiRepo: Operates on the wiki git checkout
//   - DescriptorStore: Reads the package descriptor
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Publish audit log. Without it, runs are not recorded.
//   - ReleasePublisher: GitHub releases. Without it, the release step is skipped.
//   - DocWatcher: Filesystem watching. Without it, wiki watch is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
