// Package sqlite provides SQLite-backed persistence for the publish
// run audit log. The schema is managed through embedded migrations
// applied on startup.
package sqlite
