package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newsdesk/internal/feed"
	"newsdesk/internal/model"
)

type HeadlineSource interface {
	Snapshot(ctx context.Context) feed.Snapshot
	Refresh(ctx context.Context) (feed.Snapshot, error)
	Find(ctx context.Context, url string) (model.Headline, bool)
}

type FeedHandler struct {
	source   HeadlineSource
	pageSize int
}

func NewFeedHandler(source HeadlineSource, pageSize int) *FeedHandler {
	if pageSize < 1 {
		pageSize = model.DefaultVisibleWindow
	}
	return &FeedHandler{source: source, pageSize: pageSize}
}

func toHeadlineResponse(h model.Headline, withContent bool) HeadlineResponse {
	res := HeadlineResponse{
		Title:       h.Title,
		Description: h.Description,
		URL:         h.URL,
		URLToImage:  h.URLToImage,
		SourceName:  h.SourceName,
		Author:      h.Author,
		Views:       h.Views,
		Comments:    h.Comments,
	}
	if !h.PublishedAt.IsZero() {
		res.PublishedAt = h.PublishedAt.Format(time.RFC3339)
	}
	if withContent {
		res.Content = h.Content
	}
	return res
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	filters, err := getFilterState(c)
	if err != nil {
		slog.Warn("invalid feed filter", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	snap := h.source.Snapshot(c.Request.Context())
	items := feed.Apply(snap.Headlines, filters)

	window := feed.At(h.pageSize, getQueryInt("visible", h.pageSize, c))
	more, less := window, window
	more.LoadMore()
	less.SeeLess()

	page := window.Slice(items)
	headlines := make([]HeadlineResponse, 0, len(page))
	for _, item := range page {
		headlines = append(headlines, toHeadlineResponse(item, false))
	}

	res := FeedResponse{
		Headlines: headlines,
		Filters: FilterResponse{
			Search: filters.Search,
			SortBy: filters.SortBy,
			Author: filters.Author,
		},
		Total:        len(items),
		Visible:      window.Visible,
		NextVisible:  more.Visible,
		ResetVisible: less.Visible,
		HasMore:      window.HasMore(len(items)),
		CanSeeLess:   window.CanSeeLess(len(items)),
		Empty:        len(items) == 0,
	}
	if res.Empty {
		res.Message = "No headlines available"
	}
	if snap.Err != nil {
		res.Error = "Failed to fetch news"
	}

	c.JSON(http.StatusOK, res)
}

func (h *FeedHandler) GetAuthors(c *gin.Context) {
	snap := h.source.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, AuthorsResponse{Authors: feed.Authors(snap.Headlines)})
}

func (h *FeedHandler) Refresh(c *gin.Context) {
	snap, err := h.source.Refresh(c.Request.Context())
	if errors.Is(err, feed.ErrSuperseded) {
		c.JSON(http.StatusConflict, gin.H{"error": "Refresh superseded by a newer request"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Total:     len(snap.Headlines),
		FetchedAt: snap.FetchedAt.Format(time.RFC3339),
	})
}

// GetArticle returns the full headline, including content, for one URL.
func (h *FeedHandler) GetArticle(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing article url"})
		return
	}

	article, ok := h.source.Find(c.Request.Context(), url)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toHeadlineResponse(article, true))
}

func getFilterState(c *gin.Context) (feed.FilterState, error) {
	filters := feed.DefaultFilterState()
	for _, key := range []string{feed.KeySearch, feed.KeySortBy, feed.KeyAuthor} {
		value, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		var err error
		filters, err = filters.With(key, value)
		if err != nil {
			return filters, err
		}
	}
	return filters, nil
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramValue := c.Query(name)

	if paramValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramValue)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramValue, "error", err)
		return defaultValue
	}

	return parsedValue
}
