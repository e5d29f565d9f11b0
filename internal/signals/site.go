package signals

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SiteProfiler pulls a small amount of self-descriptive text from a
// company homepage: the page title plus description, keywords and
// generator meta tags. The text only feeds the heuristic tech engine;
// it is never stored or shown.
type SiteProfiler struct {
	client *http.Client
}

// NewSiteProfiler creates a homepage profiler.
func NewSiteProfiler(timeout time.Duration) *SiteProfiler {
	return &SiteProfiler{client: &http.Client{Timeout: timeout}}
}

// Profile fetches the homepage and returns its descriptive text as one
// space-joined string. Any failure yields "" — the heuristic engine
// simply works with less input.
func (p *SiteProfiler) Profile(ctx context.Context, website string) string {
	if website == "" {
		return ""
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}

	body, err := doGet(ctx, p.client, website, map[string]string{
		"Accept": "text/html,application/xhtml+xml",
	})
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var parts []string
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		parts = append(parts, title)
	}
	doc.Find(`meta[name="description"], meta[name="keywords"], meta[name="generator"], meta[property="og:description"]`).
		Each(func(_ int, s *goquery.Selection) {
			if content, ok := s.Attr("content"); ok {
				if content = strings.TrimSpace(content); content != "" {
					parts = append(parts, content)
				}
			}
		})

	return strings.Join(parts, " ")
}
