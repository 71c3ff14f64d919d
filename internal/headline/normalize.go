// Package headline turns upstream articles into feed headlines.
package headline

import (
	"math/rand/v2"
	"strings"
	"time"

	"newsdesk/internal/model"
	"newsdesk/pkg/news"
)

const (
	MinSyntheticCount = 100
	MaxSyntheticCount = 1099 // exclusive
	maxAuthors        = 2
)

// RandomCountGenerator supplies placeholder engagement counters for articles
// that arrive without them.
type RandomCountGenerator interface {
	Count() int
}

type randomCounts struct{}

// NewRandomCounts returns a generator over [MinSyntheticCount, MaxSyntheticCount).
func NewRandomCounts() RandomCountGenerator {
	return randomCounts{}
}

func (randomCounts) Count() int {
	return MinSyntheticCount + rand.IntN(MaxSyntheticCount-MinSyntheticCount)
}

// Normalize maps upstream articles to headlines. Missing or zero counters are
// filled from gen exactly once per call.
func Normalize(articles []news.Article, gen RandomCountGenerator) []model.Headline {
	headlines := make([]model.Headline, 0, len(articles))
	for _, a := range articles {
		headlines = append(headlines, model.Headline{
			Title:       a.Title,
			Description: withDefault(a.Description, model.NoDescription),
			Content:     withDefault(a.Content, model.NoContent),
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: ParsePublishedAt(a.PublishedAt),
			SourceName:  withDefault(a.Source.Name, model.UnknownSource),
			Author:      Authors(a.Author),
			Views:       counter(a.Views, gen),
			Comments:    counter(a.Comments, gen),
		})
	}
	return headlines
}

// Authors keeps at most the first two names of a comma separated byline.
func Authors(byline string) string {
	if strings.TrimSpace(byline) == "" {
		return model.UnknownAuthor
	}

	parts := strings.Split(byline, ",")
	names := make([]string, 0, maxAuthors)
	for _, p := range parts {
		if len(names) == maxAuthors {
			break
		}
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return model.UnknownAuthor
	}
	return strings.Join(names, ", ")
}

// ParsePublishedAt accepts RFC 3339 timestamps; anything else is the zero time.
func ParsePublishedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func counter(v *int, gen RandomCountGenerator) int {
	if v != nil && *v != 0 {
		return *v
	}
	return gen.Count()
}

func withDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
