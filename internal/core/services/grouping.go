package services

import (
	"sort"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

// GroupByMonth parses every item's pubDate and buckets the items by
// calendar month. Groups are ordered most recent month first and items
// within a group most recent first. Items whose pubDate cannot be parsed
// are returned separately as undated.
func GroupByMonth(items []domain.ChangelogItem) (groups []domain.MonthGroup, undated []domain.ChangelogItem) {
	byKey := make(map[string][]domain.ChangelogItem)

	for _, item := range items {
		published, err := domain.ParsePubDate(item.PubDate)
		if err != nil {
			undated = append(undated, item)
			continue
		}
		item.Published = published
		key := domain.MonthKey(published)
		byKey[key] = append(byKey[key], item)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	// YYYY-MM keys sort chronologically as strings.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups = make([]domain.MonthGroup, 0, len(keys))
	for _, key := range keys {
		bucket := byKey[key]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Published.After(bucket[j].Published)
		})
		groups = append(groups, domain.MonthGroup{Key: key, Items: bucket})
	}

	return groups, undated
}
