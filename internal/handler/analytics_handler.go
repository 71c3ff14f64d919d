package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/internal/analytics"
	"newsdesk/internal/config"
)

type AnalyticsHandler struct {
	source HeadlineSource
	loc    *time.Location
}

func NewAnalyticsHandler(source HeadlineSource, loc *time.Location) *AnalyticsHandler {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsHandler{source: source, loc: loc}
}

// GetAnalytics reports the overview, per-source counts and publication-time
// buckets. The optional tz query parameter overrides the configured zone.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	loc := h.loc
	if tz := c.Query("tz"); tz != "" {
		parsed, err := config.ParseLocation(tz)
		if err != nil {
			slog.Warn("invalid timezone", "tz", tz, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone"})
			return
		}
		loc = parsed
	}

	headlines := h.source.Snapshot(c.Request.Context()).Headlines

	overview := analytics.Summarize(headlines)
	res := AnalyticsResponse{
		Overview: OverviewResponse{
			TotalArticles: overview.TotalArticles,
			UniqueSources: overview.UniqueSources,
		},
		Sources:  []SourceCountResponse{},
		Times:    []TimeBucketResponse{},
		Timezone: loc.String(),
	}
	if !overview.MostRecent.IsZero() {
		res.Overview.MostRecent = overview.MostRecent.In(loc).Format(time.RFC3339)
	}

	for _, s := range analytics.SourceDistribution(headlines) {
		res.Sources = append(res.Sources, SourceCountResponse{Name: s.Name, Count: s.Count})
	}
	for _, b := range analytics.TimeDistribution(headlines, loc) {
		res.Times = append(res.Times, TimeBucketResponse{TimeRange: b.TimeRange, Count: b.Count})
	}

	c.JSON(http.StatusOK, res)
}
