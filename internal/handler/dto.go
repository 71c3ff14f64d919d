package handler

type HeadlineResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage,omitempty"`
	PublishedAt string `json:"publishedAt"`
	SourceName  string `json:"sourceName"`
	Author      string `json:"author"`
	Views       int    `json:"views"`
	Comments    int    `json:"comments"`
}

type FilterResponse struct {
	Search string `json:"search"`
	SortBy string `json:"sortBy"`
	Author string `json:"author"`
}

type FeedResponse struct {
	Headlines    []HeadlineResponse `json:"headlines"`
	Filters      FilterResponse     `json:"filters"`
	Total        int                `json:"total"`
	Visible      int                `json:"visible"`
	NextVisible  int                `json:"nextVisible"`
	ResetVisible int                `json:"resetVisible"`
	HasMore      bool               `json:"hasMore"`
	CanSeeLess   bool               `json:"canSeeLess"`
	Empty        bool               `json:"empty"`
	Message      string             `json:"message,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type AuthorsResponse struct {
	Authors []string `json:"authors"`
}

type RefreshResponse struct {
	Total     int    `json:"total"`
	FetchedAt string `json:"fetchedAt"`
}

type SourceCountResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TimeBucketResponse struct {
	TimeRange string `json:"timeRange"`
	Count     int    `json:"count"`
}

type OverviewResponse struct {
	TotalArticles int    `json:"totalArticles"`
	UniqueSources int    `json:"uniqueSources"`
	MostRecent    string `json:"mostRecent,omitempty"`
}

type AnalyticsResponse struct {
	Overview OverviewResponse      `json:"overview"`
	Sources  []SourceCountResponse `json:"sources"`
	Times    []TimeBucketResponse  `json:"times"`
	Timezone string                `json:"timezone"`
}

type PayoutInputRequest struct {
	Rate     *float64 `json:"rate" binding:"required"`
	Articles *int     `json:"articles" binding:"required"`
}

type PayoutStateResponse struct {
	Rate       float64 `json:"rate"`
	Articles   int     `json:"articles"`
	Total      string  `json:"total"`
	Persistent bool    `json:"persistent"`
}

type PayoutRecordResponse struct {
	ID          string  `json:"id"`
	Rate        float64 `json:"rate"`
	Articles    int     `json:"articles"`
	TotalPayout string  `json:"totalPayout"`
	Date        string  `json:"date"`
}

type SavePayoutResponse struct {
	Record     PayoutRecordResponse `json:"record"`
	Persistent bool                 `json:"persistent"`
}

type PayoutHistoryResponse struct {
	History    []PayoutRecordResponse `json:"history"`
	Persistent bool                   `json:"persistent"`
}
