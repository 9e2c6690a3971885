// Package filesystem stores changelog entries as plain files.
//
// Each entry lives at <dir>/<slug>.mdx and holds the markdown exactly as it
// was downloaded. Entries with the same slug overwrite each other. The
// combined document is written through a temporary file and renamed into
// place, so it is either the previous version or the complete new one.
package filesystem
