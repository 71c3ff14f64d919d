package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL      = "https://newsapi.org"
	DefaultQuery        = "tesla"
	DefaultLookbackDays = 1

	fromDateLayout = "2006-01-02"
)

// NewsAPIClient calls the `/v2/everything` search endpoint with a fixed query
// and a rolling `from` date of now minus lookbackDays (UTC).
type NewsAPIClient struct {
	baseURL      string
	apiKey       string
	query        string
	lookbackDays int
	httpClient   *http.Client
	now          func() time.Time
}

type Option func(*NewsAPIClient)

func WithQuery(q string) Option {
	return func(c *NewsAPIClient) {
		if q != "" {
			c.query = q
		}
	}
}

func WithLookbackDays(days int) Option {
	return func(c *NewsAPIClient) {
		if days >= 0 {
			c.lookbackDays = days
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *NewsAPIClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *NewsAPIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *NewsAPIClient) {
		if now != nil {
			c.now = now
		}
	}
}

func NewNewsAPIClient(baseURL, apiKey string, opts ...Option) *NewsAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &NewsAPIClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		query:        DefaultQuery,
		lookbackDays: DefaultLookbackDays,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// FromDate is the `from` filter sent upstream.
func (c *NewsAPIClient) FromDate() string {
	return c.now().UTC().AddDate(0, 0, -c.lookbackDays).Format(fromDateLayout)
}

func (c *NewsAPIClient) everythingURL() string {
	params := url.Values{}
	params.Set("q", c.query)
	params.Set("from", c.FromDate())
	params.Set("sortBy", "publishedAt")
	params.Set("apiKey", c.apiKey)
	return c.baseURL + "/v2/everything?" + params.Encode()
}

// Everything performs one upstream request and returns the body unchanged.
// The body is checked to decode as `{articles: [...]}` first so that a
// malformed 2xx reply is reported as a transport failure.
func (c *NewsAPIClient) Everything(ctx context.Context) ([]byte, error) {
	body, _, err := c.everything(ctx)
	return body, err
}

func (c *NewsAPIClient) Fetch(ctx context.Context) ([]Article, error) {
	_, raw, err := c.everything(ctx)
	if err != nil {
		return nil, err
	}
	return raw.Articles, nil
}

func (c *NewsAPIClient) everything(ctx context.Context) ([]byte, *everythingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.everythingURL(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: newsapi request: %v", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: newsapi fetch: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: newsapi read: %v", ErrTransport, err)
	}

	var raw everythingResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("%w: newsapi decode: %v", ErrTransport, err)
	}

	return body, &raw, nil
}

type everythingResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}
