package model

import "time"

const (
	UnknownSource        = "Unknown Source"
	UnknownAuthor        = "Unknown Author"
	NoDescription        = "No description available."
	NoContent            = "No full content available."
	SortByViews          = "views"
	SortByComments       = "comments"
	SortByDate           = "date"
	DefaultSortBy        = SortByViews
	DefaultVisibleWindow = 9
)

// Headline is the normalized article shown in the feed. Views and Comments
// are fixed once the headline is built.
type Headline struct {
	Title       string
	Description string
	Content     string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	SourceName  string
	Author      string
	Views       int
	Comments    int
}
