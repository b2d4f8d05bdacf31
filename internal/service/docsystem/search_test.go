package docsystem

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

func TestMatchRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		query     string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"ascii", "Hello World", "world", 6, 11, true},
		{"upper query", "golang notes", "GO", 0, 2, true},
		{"cjk offsets are runes", "今日はGoの日", "go", 3, 5, true},
		{"cjk needle", "メモ: 東京タワー", "東京", 4, 6, true},
		{"missing", "abc", "xyz", 0, 0, false},
		{"needle longer", "ab", "abc", 0, 0, false},
		{"empty needle", "abc", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := MatchRange(tt.text, tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestHighlight(t *testing.T) {
	doc := models.Document{ID: "d", Title: "Cooking", Content: "Pasta and rice", Tags: []string{"Food"}}

	r := highlight(doc, "cook")
	assert.Equal(t, models.MatchTitle, r.MatchType)
	require.NotNil(t, r.MatchStart)
	assert.Equal(t, 0, *r.MatchStart)
	assert.Equal(t, 4, *r.MatchEnd)

	r = highlight(doc, "RICE")
	assert.Equal(t, models.MatchContent, r.MatchType)
	assert.Equal(t, 10, *r.MatchStart)
	assert.Equal(t, 14, *r.MatchEnd)

	r = highlight(doc, "foo")
	assert.Equal(t, models.MatchTag, r.MatchType)
	assert.Nil(t, r.MatchStart)

	r = highlight(models.Document{Title: "x"}, "x")
	assert.NotNil(t, r.Tags)
}

func TestSearch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addDoc(alice, "Go tips", "")
	f.store.addDoc(alice, "Other", "written in go")
	f.store.addDoc(alice, "Unrelated", "nothing")
	f.store.addDoc(bob, "Go for bob", "")

	results, err := f.search.Search(ctx, alice, "  go ")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Go tips", results[0].Title)
	assert.Equal(t, models.MatchTitle, results[0].MatchType)
	assert.Equal(t, models.MatchContent, results[1].MatchType)

	for _, q := range []string{"", "   ", strings.Repeat("q", 201)} {
		_, err := f.search.Search(ctx, alice, q)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestSearchTitles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addDoc(alice, "Alpha", "")
	f.store.addDoc(alice, "Beta", "")

	refs, err := f.search.SearchTitles(ctx, alice, "alp")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "Alpha", refs[0].Title)

	refs, err = f.search.SearchTitles(ctx, alice, "")
	require.NoError(t, err)
	assert.Len(t, refs, 2)
}
