package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerpress/media-library/internal/domain"
	"github.com/dealerpress/media-library/internal/view"
)

func item(id, name string, size int64, created time.Time, tags ...string) domain.MediaItem {
	return domain.MediaItem{
		ID:        id,
		Name:      name,
		Type:      domain.MediaTypeImage,
		Size:      size,
		CreatedAt: created,
		Folder:    domain.RootFolderID,
		Tags:      tags,
	}
}

func TestVisible_Filtering(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	a := item("a", "front-lot.jpg", 100, base, "red", "ferrari")
	b := item("b", "showroom.jpg", 200, base.Add(time.Hour), "blue")
	video := item("v", "walkaround.mp4", 5000, base.Add(2*time.Hour))
	video.Type = domain.MediaTypeVideo
	other := item("o", "logo.png", 50, base)
	other.Folder = "branding"

	items := []domain.MediaItem{a, b, video, other}

	tests := []struct {
		name    string
		state   domain.FilterState
		wantIDs []string
	}{
		{
			name:    "default state shows current folder, newest first",
			state:   domain.DefaultFilterState(domain.RootFolderID),
			wantIDs: []string{"v", "b", "a"},
		},
		{
			name: "type filter narrows to videos",
			state: domain.FilterState{
				CurrentFolder: domain.RootFolderID,
				TypeFilter:    domain.MediaTypeVideo,
				SortBy:        domain.SortByDate,
			},
			wantIDs: []string{"v"},
		},
		{
			name: "search matches name substring case-insensitively",
			state: domain.FilterState{
				CurrentFolder: domain.RootFolderID,
				TypeFilter:    domain.MediaTypeAll,
				SearchQuery:   "SHOW",
			},
			wantIDs: []string{"b"},
		},
		{
			name: "search matches tags",
			state: domain.FilterState{
				CurrentFolder: domain.RootFolderID,
				TypeFilter:    domain.MediaTypeAll,
				SearchQuery:   "ferrari",
			},
			wantIDs: []string{"a"},
		},
		{
			name: "folder narrows to its own items",
			state: domain.FilterState{
				CurrentFolder: "branding",
				TypeFilter:    domain.MediaTypeAll,
			},
			wantIDs: []string{"o"},
		},
		{
			name: "no matches yields empty slice",
			state: domain.FilterState{
				CurrentFolder: domain.RootFolderID,
				TypeFilter:    domain.MediaTypeAll,
				SearchQuery:   "nonexistent",
			},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.Visible(items, tt.state)
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestVisible_IsSubsetOfInput(t *testing.T) {
	base := time.Now()
	items := []domain.MediaItem{
		item("1", "a.jpg", 10, base),
		item("2", "b.jpg", 20, base.Add(time.Minute)),
		item("3", "c.jpg", 30, base.Add(2*time.Minute)),
	}
	byID := make(map[string]domain.MediaItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	got := view.Visible(items, domain.FilterState{
		CurrentFolder: domain.RootFolderID,
		TypeFilter:    domain.MediaTypeAll,
		SearchQuery:   "jpg",
	})

	require.LessOrEqual(t, len(got), len(items))
	for _, it := range got {
		src, ok := byID[it.ID]
		require.True(t, ok, "visible item %s must come from the input", it.ID)
		assert.Equal(t, src.Name, it.Name)
	}
}

func TestVisible_SortDirections(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.MediaItem{
		item("small-old", "zebra.jpg", 10, base),
		item("big-new", "alpha.jpg", 300, base.Add(48*time.Hour)),
		item("mid", "mango.jpg", 50, base.Add(24*time.Hour)),
	}

	tests := []struct {
		name    string
		sortBy  domain.SortKey
		order   domain.SortOrder
		wantIDs []string
	}{
		{"name natural is ascending", domain.SortByName, "", []string{"big-new", "mid", "small-old"}},
		{"name descending", domain.SortByName, domain.SortDesc, []string{"small-old", "mid", "big-new"}},
		{"size natural is largest first", domain.SortBySize, "", []string{"big-new", "mid", "small-old"}},
		{"size ascending", domain.SortBySize, domain.SortAsc, []string{"small-old", "mid", "big-new"}},
		{"date natural is newest first", domain.SortByDate, "", []string{"big-new", "mid", "small-old"}},
		{"date ascending", domain.SortByDate, domain.SortAsc, []string{"small-old", "mid", "big-new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.Visible(items, domain.FilterState{
				CurrentFolder: domain.RootFolderID,
				TypeFilter:    domain.MediaTypeAll,
				SortBy:        tt.sortBy,
				SortOrder:     tt.order,
			})
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestVisible_StableTieBreak(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	// Same size: catalog order must be preserved
	items := []domain.MediaItem{
		item("first", "a.jpg", 100, base),
		item("second", "b.jpg", 100, base),
		item("third", "c.jpg", 100, base),
	}

	got := view.Visible(items, domain.FilterState{
		CurrentFolder: domain.RootFolderID,
		TypeFilter:    domain.MediaTypeAll,
		SortBy:        domain.SortBySize,
	})

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
	assert.Equal(t, "third", got[2].ID)
}

func TestVisible_DoesNotMutateInput(t *testing.T) {
	base := time.Now()
	items := []domain.MediaItem{
		item("1", "b.jpg", 10, base),
		item("2", "a.jpg", 20, base.Add(time.Minute)),
	}

	_ = view.Visible(items, domain.FilterState{
		CurrentFolder: domain.RootFolderID,
		TypeFilter:    domain.MediaTypeAll,
		SortBy:        domain.SortByName,
	})

	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
}
