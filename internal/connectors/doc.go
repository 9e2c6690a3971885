// Package connectors provides the adapters that talk to the outside world:
//
//   - rss: Reads the changelog feed from disk
//   - web: Downloads entry markdown over HTTP and paces requests
//   - filesystem: Watches the markdown directory for changes
//
// Connectors implement driven ports and are wired in cmd/changelog-migrate.
package connectors
