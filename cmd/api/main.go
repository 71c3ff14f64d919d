package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newsdesk/internal/config"
	"newsdesk/internal/feed"
	"newsdesk/internal/handler"
	"newsdesk/internal/headline"
	"newsdesk/internal/payout"
	"newsdesk/internal/session"
	"newsdesk/internal/store"
	"newsdesk/pkg/news"
)

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
	feedService := feed.NewService(client, headline.NewRandomCounts())

	ctx := context.Background()

	kv, closeStore, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Warn("payout store unavailable, using session-only storage", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()

	ledger := payout.NewLedger(kv)
	if err := ledger.Load(ctx); err != nil {
		slog.Warn("error loading payout ledger", "error", err)
	}

	sessions := session.NewStaticTokens(cfg.Session.Tokens)
	if len(cfg.Session.Tokens) == 0 {
		slog.Warn("no session tokens configured, gated routes will reject every request")
	}

	r := gin.Default()

	slog.Info("AllowOrigins URL:", "urls", cfg.Server.AllowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	handler.RegisterRoutes(r, handler.Handlers{
		News:      handler.NewNewsHandler(client),
		Feed:      handler.NewFeedHandler(feedService, cfg.Feed.PageSize),
		Analytics: handler.NewAnalyticsHandler(feedService, loc),
		Payout:    handler.NewPayoutHandler(ledger),
	}, sessions)

	err = r.Run(cfg.Server.Addr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
