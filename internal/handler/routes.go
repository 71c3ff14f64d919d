package handler

import (
	"github.com/gin-gonic/gin"

	"newsdesk/internal/session"
)

type Handlers struct {
	News      *NewsHandler
	Feed      *FeedHandler
	Analytics *AnalyticsHandler
	Payout    *PayoutHandler
}

// RegisterRoutes mounts the public feed routes and the session-gated article,
// analytics and payout routes.
func RegisterRoutes(r *gin.Engine, h Handlers, sessions session.SessionProvider) {
	r.GET("/health", h.Payout.GetHealth)
	r.GET("/api/news", h.News.GetNews)

	r.GET("/feed", h.Feed.GetFeed)
	r.GET("/feed/authors", h.Feed.GetAuthors)
	r.POST("/feed/refresh", h.Feed.Refresh)

	authed := r.Group("/", session.RequireSession(sessions))
	authed.GET("/feed/article", h.Feed.GetArticle)
	authed.GET("/analytics", h.Analytics.GetAnalytics)

	authed.GET("/payout", h.Payout.GetPayout)
	authed.PUT("/payout/inputs", h.Payout.PutInputs)
	authed.POST("/payout/calculate", h.Payout.Calculate)
	authed.POST("/payout/save", h.Payout.Save)
	authed.GET("/payout/history", h.Payout.GetHistory)
	authed.GET("/payout/export.csv", h.Payout.ExportCSV)
	authed.GET("/payout/export.pdf", h.Payout.ExportPDF)
}
