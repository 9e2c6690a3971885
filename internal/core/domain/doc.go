// Package domain defines the core entities of the changelog migration.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ChangelogItem: One feed entry with its slug and publication date
//   - MonthGroup: Entries bucketed by calendar month
//   - Config: Paths, timings and formatting options for every stage
//   - FetchSummary, CombineSummary: Per-run outcome counters
//   - RunRecord, ItemRecord: Run history entries
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
