package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// UnknownSlug is used when a link has no usable path segment.
const UnknownSlug = "unknown"

var (
	unsafeSlugChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	dashRuns        = regexp.MustCompile(`-+`)
)

// Slugify derives a file-safe slug from the last path segment of link.
// Characters outside [A-Za-z0-9_-] become "-", runs of "-" collapse and
// leading or trailing "-" are trimmed.
func Slugify(link string) string {
	path := link
	if u, err := url.Parse(link); err == nil {
		path = u.Path
	}

	var last string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			last = segment
		}
	}
	if last == "" {
		return UnknownSlug
	}

	slug := unsafeSlugChars.ReplaceAllString(last, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return UnknownSlug
	}
	return slug
}
