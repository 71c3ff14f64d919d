// Package feed filters, sorts and pages normalized headlines.
package feed

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"newsdesk/internal/model"
)

const (
	KeySearch = "search"
	KeySortBy = "sortBy"
	KeyAuthor = "author"

	// NoSort is the sidebar's "No Filter" choice; it clears sortBy, which
	// falls through to date order.
	NoSort = "no_filter"
)

var (
	ErrUnknownFilterKey = errors.New("unknown filter key")
	ErrInvalidSortBy    = errors.New("sortBy must be one of: views, comments, date")
)

type FilterState struct {
	Search string
	SortBy string
	Author string
}

func DefaultFilterState() FilterState {
	return FilterState{SortBy: model.DefaultSortBy}
}

// With returns a copy of f with one key replaced.
func (f FilterState) With(key, value string) (FilterState, error) {
	switch key {
	case KeySearch:
		f.Search = value
	case KeyAuthor:
		f.Author = value
	case KeySortBy:
		switch value {
		case NoSort, "":
			f.SortBy = ""
		case model.SortByViews, model.SortByComments, model.SortByDate:
			f.SortBy = value
		default:
			return f, fmt.Errorf("%w: %q", ErrInvalidSortBy, value)
		}
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFilterKey, key)
	}
	return f, nil
}

// Apply filters headlines by title and author substring (case-insensitive)
// and returns a stably sorted copy. The input slice is not modified.
func Apply(headlines []model.Headline, f FilterState) []model.Headline {
	search := strings.ToLower(f.Search)
	author := strings.ToLower(f.Author)

	out := make([]model.Headline, 0, len(headlines))
	for _, h := range headlines {
		if !strings.Contains(strings.ToLower(h.Title), search) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(h.Author), author) {
			continue
		}
		out = append(out, h)
	}

	slices.SortStableFunc(out, compareFor(f.SortBy))
	return out
}

func compareFor(sortBy string) func(a, b model.Headline) int {
	switch sortBy {
	case model.SortByViews:
		return func(a, b model.Headline) int { return cmp.Compare(b.Views, a.Views) }
	case model.SortByComments:
		return func(a, b model.Headline) int { return cmp.Compare(b.Comments, a.Comments) }
	default:
		return func(a, b model.Headline) int { return b.PublishedAt.Compare(a.PublishedAt) }
	}
}

// Authors lists distinct author strings in first-seen order.
func Authors(headlines []model.Headline) []string {
	seen := make(map[string]struct{}, len(headlines))
	authors := make([]string, 0, len(headlines))
	for _, h := range headlines {
		if _, ok := seen[h.Author]; ok {
			continue
		}
		seen[h.Author] = struct{}{}
		authors = append(authors, h.Author)
	}
	return authors
}
