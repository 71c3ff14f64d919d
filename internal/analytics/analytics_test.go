package analytics

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"newsdesk/internal/model"
)

func at(hour int) time.Time {
	return time.Date(2024, 12, 6, hour, 30, 0, 0, time.UTC)
}

func TestSourceDistributionOrderAndDefault(t *testing.T) {
	hs := []model.Headline{
		{SourceName: "Electrek"},
		{SourceName: "Reuters"},
		{SourceName: ""},
		{SourceName: "Electrek"},
		{SourceName: model.UnknownSource},
	}

	got := SourceDistribution(hs)
	assert.Equal(t, []SourceCount{
		{Name: "Electrek", Count: 2},
		{Name: "Reuters", Count: 1},
		{Name: model.UnknownSource, Count: 2},
	}, got)
}

func TestTimeDistributionBuckets(t *testing.T) {
	hs := []model.Headline{
		{PublishedAt: at(0)},
		{PublishedAt: at(5)},
		{PublishedAt: at(6)},
		{PublishedAt: at(12)},
		{PublishedAt: at(17)},
		{PublishedAt: at(18)},
		{PublishedAt: at(23)},
	}

	got := TimeDistribution(hs, time.UTC)
	assert.Equal(t, []TimeBucket{
		{TimeRange: "00:00-06:00", Count: 2},
		{TimeRange: "06:00-12:00", Count: 1},
		{TimeRange: "12:00-18:00", Count: 2},
		{TimeRange: "18:00-24:00", Count: 2},
	}, got)
}

func TestTimeDistributionHour23(t *testing.T) {
	got := TimeDistribution([]model.Headline{{PublishedAt: at(23)}}, time.UTC)
	assert.Equal(t, 0, got[0].Count)
	assert.Equal(t, 0, got[1].Count)
	assert.Equal(t, 0, got[2].Count)
	assert.Equal(t, 1, got[3].Count)
}

func TestTimeDistributionMissingTime(t *testing.T) {
	got := TimeDistribution([]model.Headline{{PublishedAt: time.Time{}}}, time.UTC)
	assert.Equal(t, 0, got[0].Count)
	assert.Equal(t, 1, got[3].Count)
}

func TestTimeDistributionUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:30 UTC is 05:30 the next day in JST.
	got := TimeDistribution([]model.Headline{{PublishedAt: at(20)}}, tokyo)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 0, got[3].Count)
}

func TestTimeDistributionEmpty(t *testing.T) {
	got := TimeDistribution(nil, nil)
	assert.Equal(t, 4, len(got))
	for _, b := range got {
		assert.Equal(t, 0, b.Count)
	}
}

func TestDistributionsSumToTotal(t *testing.T) {
	var hs []model.Headline
	for i := 0; i < 37; i++ {
		hs = append(hs, model.Headline{
			SourceName:  []string{"A", "B", "", "C"}[i%4],
			PublishedAt: at(i % 24),
		})
	}

	var sources, times int
	for _, s := range SourceDistribution(hs) {
		sources += s.Count
	}
	for _, b := range TimeDistribution(hs, time.UTC) {
		times += b.Count
	}
	assert.Equal(t, len(hs), sources)
	assert.Equal(t, len(hs), times)
}

func TestSummarize(t *testing.T) {
	hs := []model.Headline{
		{SourceName: "A", PublishedAt: at(9)},
		{SourceName: "B", PublishedAt: at(3)},
		{SourceName: "A", PublishedAt: at(1)},
	}
	o := Summarize(hs)
	assert.Equal(t, 3, o.TotalArticles)
	assert.Equal(t, 2, o.UniqueSources)
	assert.Equal(t, at(9), o.MostRecent)

	assert.Equal(t, Overview{}, Summarize(nil))
}
