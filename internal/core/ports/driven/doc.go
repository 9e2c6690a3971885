// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FeedReader: Parses the changelog RSS feed
//   - ContentFetcher: Downloads an entry's markdown export
//   - Pacer: Spaces out downloads
//   - EntryStore: Per-entry markdown persistence
//   - DocumentWriter: Atomic write of the combined document
//   - Normaliser: Rewrites entries for the combined document
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Run history. Without it, runs are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
