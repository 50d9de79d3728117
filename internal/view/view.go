// Package view derives the visible, ordered subset of the catalog for the
// current filter state. It is purely functional: the same inputs always yield
// the same output and nothing here mutates the catalog.
package view

import (
	"sort"
	"strings"

	"github.com/dealerpress/media-library/internal/domain"
)

// Visible filters and orders items according to state. The filter predicate
// is a conjunction: exact folder match, type match (MediaTypeAll matches
// everything) and a case-insensitive substring match on name or any tag.
// Ties keep the original catalog order.
func Visible(items []domain.MediaItem, state domain.FilterState) []domain.MediaItem {
	out := make([]domain.MediaItem, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(state.SearchQuery))

	for _, item := range items {
		if item.Folder != state.CurrentFolder {
			continue
		}
		if !matchesType(item, state.TypeFilter) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, state.SortBy, state.SortOrder)
	return out
}

func matchesType(item domain.MediaItem, filter domain.MediaType) bool {
	if filter == "" || filter == domain.MediaTypeAll {
		return true
	}
	return item.Type == filter
}

func matchesQuery(item domain.MediaItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Name), query) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortItems orders items by the given key. The natural direction per key is
// name ascending, size descending (largest first) and date descending (most
// recent first); an explicit SortOrder flips it.
func sortItems(items []domain.MediaItem, key domain.SortKey, order domain.SortOrder) {
	var less func(a, b domain.MediaItem) bool

	switch key {
	case domain.SortByName:
		less = func(a, b domain.MediaItem) bool { return a.Name < b.Name }
		if order == domain.SortDesc {
			less = func(a, b domain.MediaItem) bool { return a.Name > b.Name }
		}
	case domain.SortBySize:
		less = func(a, b domain.MediaItem) bool { return a.Size > b.Size }
		if order == domain.SortAsc {
			less = func(a, b domain.MediaItem) bool { return a.Size < b.Size }
		}
	default: // SortByDate
		less = func(a, b domain.MediaItem) bool { return a.CreatedAt.After(b.CreatedAt) }
		if order == domain.SortAsc {
			less = func(a, b domain.MediaItem) bool { return a.CreatedAt.Before(b.CreatedAt) }
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
