package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Article is a single record from the upstream `articles` array. Counter
// fields are pointers because most upstreams omit them.
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
	Views       *int   `json:"views"`
	Comments    *int   `json:"comments"`
}

type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type NewsClient interface {
	Fetch(ctx context.Context) ([]Article, error)
	Name() string
}

// ErrTransport marks network and decode failures, as opposed to an upstream
// that answered with a non-2xx status.
var ErrTransport = errors.New("news transport error")

// UpstreamError is returned when the news API answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("news upstream returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
