// Package analytics reduces a headline list into chart-ready counts.
package analytics

import (
	"time"

	"newsdesk/internal/model"
)

var bucketLabels = [4]string{
	"00:00-06:00",
	"06:00-12:00",
	"12:00-18:00",
	"18:00-24:00",
}

type SourceCount struct {
	Name  string
	Count int
}

type TimeBucket struct {
	TimeRange string
	Count     int
}

type Overview struct {
	TotalArticles int
	UniqueSources int
	MostRecent    time.Time
}

// SourceDistribution counts headlines per source in first-seen order.
func SourceDistribution(headlines []model.Headline) []SourceCount {
	index := make(map[string]int)
	counts := make([]SourceCount, 0)
	for _, h := range headlines {
		name := h.SourceName
		if name == "" {
			name = model.UnknownSource
		}
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, SourceCount{Name: name})
		}
		counts[i].Count++
	}
	return counts
}

// TimeDistribution counts headlines per 6-hour publication bucket, using the
// hour of day in loc. A nil loc means time.Local. Headlines without a
// publication time count in the last bucket.
func TimeDistribution(headlines []model.Headline, loc *time.Location) []TimeBucket {
	if loc == nil {
		loc = time.Local
	}

	buckets := make([]TimeBucket, len(bucketLabels))
	for i, label := range bucketLabels {
		buckets[i].TimeRange = label
	}
	for _, h := range headlines {
		if h.PublishedAt.IsZero() {
			buckets[len(buckets)-1].Count++
			continue
		}
		buckets[BucketIndex(h.PublishedAt.In(loc).Hour())].Count++
	}
	return buckets
}

// BucketIndex maps an hour of day to its bucket; ranges are [start, end).
func BucketIndex(hour int) int {
	switch {
	case hour < 6:
		return 0
	case hour < 12:
		return 1
	case hour < 18:
		return 2
	default:
		return 3
	}
}

// Summarize reports totals for the overview tab. MostRecent is the first
// headline's timestamp since the upstream orders by publishedAt.
func Summarize(headlines []model.Headline) Overview {
	o := Overview{
		TotalArticles: len(headlines),
		UniqueSources: len(SourceDistribution(headlines)),
	}
	if len(headlines) > 0 {
		o.MostRecent = headlines[0].PublishedAt
	}
	return o
}
