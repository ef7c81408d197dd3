// Package file provides file-based configuration storage.
//
// Configuration is persisted as TOML in the releasekit config directory
// and exposed through dot-notation keys such as "project.dir" and
// "index.test_simple_url".
package file
