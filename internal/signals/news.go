package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// maxNewsItems caps the number of articles kept per company.
const maxNewsItems = 8

// NewsFetcher queries NewsData.io for recent business/technology
// coverage of a company. When no API key is configured it falls back
// to a Google News RSS search so the pipeline still gets headlines.
type NewsFetcher struct {
	apiKey     string
	baseURL    string
	rssBaseURL string
	client     *http.Client
	limiter    *rate.Limiter
	parser     *gofeed.Parser
}

// NewsOption configures the news fetcher.
type NewsOption func(*NewsFetcher)

// WithNewsBaseURL overrides the NewsData.io endpoint (used in tests).
func WithNewsBaseURL(u string) NewsOption {
	return func(f *NewsFetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithNewsRSSBaseURL overrides the RSS fallback endpoint (used in tests).
func WithNewsRSSBaseURL(u string) NewsOption {
	return func(f *NewsFetcher) { f.rssBaseURL = strings.TrimRight(u, "/") }
}

// WithNewsHTTPClient sets a custom HTTP client.
func WithNewsHTTPClient(c *http.Client) NewsOption {
	return func(f *NewsFetcher) { f.client = c }
}

// NewNewsFetcher creates a news fetcher. An empty apiKey selects the
// RSS fallback path.
func NewNewsFetcher(apiKey string, timeout time.Duration, opts ...NewsOption) *NewsFetcher {
	f := &NewsFetcher{
		apiKey:     apiKey,
		baseURL:    "https://newsdata.io/api/1",
		rssBaseURL: "https://news.google.com/rss",
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		parser:     gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(f)
	}
	// The feed parser must honor the same timeout as every other request.
	f.parser.Client = f.client
	return f
}

// Fetch returns up to 8 recent articles about the company, newest
// first as delivered by the source. An empty slice with a nil error is
// a valid "no coverage" result; errors are for the caller to absorb.
func (f *NewsFetcher) Fetch(ctx context.Context, companyName string) ([]models.NewsItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if f.apiKey == "" {
		return f.fetchRSS(ctx, companyName)
	}
	return f.fetchAPI(ctx, companyName)
}

func (f *NewsFetcher) fetchAPI(ctx context.Context, companyName string) ([]models.NewsItem, error) {
	q := url.Values{}
	q.Set("apikey", f.apiKey)
	q.Set("q", `"`+companyName+`"`)
	q.Set("language", "en")
	q.Set("size", "20")
	q.Set("category", "business,technology")
	q.Set("prioritydomain", "top")

	body, err := doGet(ctx, f.client, f.baseURL+"/news?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsdata: %w", err)
	}

	var payload newsDataResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("newsdata: decode: %w", err)
	}

	items := make([]models.NewsItem, 0, maxNewsItems)
	for _, r := range payload.Results {
		if len(items) >= maxNewsItems {
			break
		}
		desc := r.Description
		if desc == "" && r.Content != "" {
			desc = truncate(r.Content, 250)
		}
		source := r.SourceID
		if source == "" {
			source = "News Source"
		}
		faviconFrom := r.SourceURL
		if faviconFrom == "" {
			faviconFrom = r.Link
		}
		items = append(items, models.NewsItem{
			Title:         r.Title,
			Description:   desc,
			URL:           r.Link,
			PublishedAt:   parseTime(r.PubDate),
			Source:        source,
			SourceFavicon: FaviconURL(faviconFrom),
		})
	}
	return items, nil
}

// fetchRSS is the keyless fallback: a Google News search feed parsed
// with gofeed and mapped into the same NewsItem shape.
func (f *NewsFetcher) fetchRSS(ctx context.Context, companyName string) ([]models.NewsItem, error) {
	q := url.Values{}
	q.Set("q", `"`+companyName+`"`)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	feed, err := f.parser.ParseURLWithContext(f.rssBaseURL+"/search?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("news rss: %w", err)
	}

	items := make([]models.NewsItem, 0, maxNewsItems)
	for _, it := range feed.Items {
		if len(items) >= maxNewsItems {
			break
		}
		published := time.Time{}
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}
		title, source := splitRSSTitle(it.Title)
		items = append(items, models.NewsItem{
			Title:         title,
			Description:   truncate(stripTags(it.Description), 250),
			URL:           it.Link,
			PublishedAt:   published,
			Source:        source,
			SourceFavicon: FaviconURL(it.Link),
		})
	}
	return items, nil
}

// splitRSSTitle separates the "Headline - Publisher" convention used
// by Google News feeds. The whole title is kept when no separator is
// found.
func splitRSSTitle(title string) (headline, source string) {
	idx := strings.LastIndex(title, " - ")
	if idx < 0 {
		return title, "News Source"
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}

// stripTags removes simple HTML markup from RSS descriptions.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// newsDataResponse is the subset of the NewsData.io payload we consume.
type newsDataResponse struct {
	Status  string           `json:"status"`
	Results []newsDataResult `json:"results"`
}

type newsDataResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
	SourceID    string `json:"source_id"`
	SourceURL   string `json:"source_url"`
}
