// Package services implements the driving port interfaces.
// Services contain the release-process business logic and orchestrate
// calls to driven ports (adapters): the process runner, the package
// index client, the wiki checkout and the stores.
package services
