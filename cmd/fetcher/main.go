package main

import (
	"context"
	"log"
	"log/slog"

	"newsdesk/internal/analytics"
	"newsdesk/internal/config"
	"newsdesk/internal/feed"
	"newsdesk/internal/headline"
	"newsdesk/pkg/news"
)

// fetcher runs one refresh against the news API and logs what the dashboard
// would show, which is handy for checking credentials and the query window.
func main() {

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if err := cfg.ValidateNews(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	cfg.SetupLogging()

	loc, _ := cfg.Location()

	client := news.NewNewsAPIClient(cfg.News.BaseURL, cfg.News.APIKey,
		news.WithQuery(cfg.News.Query),
		news.WithLookbackDays(cfg.News.LookbackDays),
		news.WithTimeout(cfg.News.Timeout),
	)

	slog.Info("fetching headlines", "source", client.Name(), "query", cfg.News.Query, "from", client.FromDate())

	snap, err := feed.NewService(client, headline.NewRandomCounts()).Refresh(context.Background())
	if err != nil {
		slog.Error("error fetching headlines", "source", client.Name(), "error", err)
		return
	}

	overview := analytics.Summarize(snap.Headlines)
	slog.Info("fetch complete",
		"source", client.Name(),
		"total", overview.TotalArticles,
		"unique_sources", overview.UniqueSources,
		"most_recent", overview.MostRecent,
		"authors", len(feed.Authors(snap.Headlines)),
	)

	for _, s := range analytics.SourceDistribution(snap.Headlines) {
		slog.Info("source", "name", s.Name, "count", s.Count)
	}
	for _, b := range analytics.TimeDistribution(snap.Headlines, loc) {
		slog.Info("publication window", "range", b.TimeRange, "count", b.Count, "timezone", loc.String())
	}
}
