package domain

import (
	"strings"
	"time"
)

// PubDateLayout is the RSS pubDate format written by the changelog host.
// The day may be one or two digits.
const PubDateLayout = "Mon, 2 Jan 2006 15:04:05 MST"

// UnknownMonthKey is the reserved bucket for entries whose pubDate cannot be
// parsed. It is never rendered.
const UnknownMonthKey = "unknown"

// ChangelogItem is one entry of the changelog feed.
type ChangelogItem struct {
	// Link is the entry URL as published in the feed.
	Link string

	// PubDate is the raw pubDate text from the feed.
	PubDate string

	// Slug names the per-entry file, derived from Link.
	Slug string

	// Published is the parsed PubDate. It is zero until the item has been
	// grouped, and stays zero when PubDate cannot be parsed.
	Published time.Time
}

// NewChangelogItem builds an item from feed values, deriving its slug.
func NewChangelogItem(link, pubDate string) ChangelogItem {
	link = strings.TrimSpace(link)
	return ChangelogItem{
		Link:    link,
		PubDate: strings.TrimSpace(pubDate),
		Slug:    Slugify(link),
	}
}

// MarkdownURL returns the URL of the entry's markdown export.
func (i ChangelogItem) MarkdownURL() string {
	return i.Link + ".md"
}

// FileName returns the name of the per-entry file.
func (i ChangelogItem) FileName() string {
	return i.Slug + ".mdx"
}

// ParsePubDate parses an RSS pubDate in PubDateLayout.
func ParsePubDate(value string) (time.Time, error) {
	return time.Parse(PubDateLayout, strings.TrimSpace(value))
}

// MonthKey returns the YYYY-MM bucket key for t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel renders the label of a month wrapper, e.g. "March 2024".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// DisplayDate renders the date stamp shown under an entry's first heading,
// e.g. "March 05, 2024".
func DisplayDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

// MonthGroup is the set of entries published in one calendar month.
type MonthGroup struct {
	// Key is the YYYY-MM bucket key, or UnknownMonthKey.
	Key string

	// Items are ordered most recent first.
	Items []ChangelogItem
}

// Label returns the wrapper label derived from the group's most recent item.
// The unknown bucket has no label.
func (g MonthGroup) Label() string {
	if g.Key == UnknownMonthKey || len(g.Items) == 0 {
		return ""
	}
	return MonthLabel(g.Items[0].Published)
}
