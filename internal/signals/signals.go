// Package signals fetches external intelligence about a company from
// read-only third-party APIs: news coverage, job postings, and the
// verified technology stack. Each fetcher is independent; a failure in
// one source never affects the others. Raw payloads are mapped into
// typed models at the fetcher boundary and never leak past it.
package signals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultUserAgent is the user agent string used for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// ErrHTTP wraps a non-2xx response with its status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// doGet performs a GET request and returns the response body.
// Non-2xx responses are returned as *ErrHTTP.
func doGet(ctx context.Context, client *http.Client, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 512 {
			snippet = snippet[:512]
		}
		return nil, &ErrHTTP{StatusCode: resp.StatusCode, Status: resp.Status, Body: snippet}
	}

	return body, nil
}

// ExtractDomain pulls the bare hostname out of a website URL, stripping
// a leading "www.". Returns "" when the URL has no usable host.
func ExtractDomain(website string) string {
	if website == "" {
		return ""
	}
	u, err := url.Parse(website)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		return ""
	}
	return strings.TrimPrefix(host, "www.")
}

// LogoURL returns the Clearbit logo URL for a company domain,
// or "" when no domain is known.
func LogoURL(domain string) string {
	if domain == "" {
		return ""
	}
	return "https://logo.clearbit.com/" + domain
}

// FaviconURL returns a Google favicon-service URL for the host of the
// given article URL. Falls back to a generic news favicon when the URL
// cannot be parsed.
func FaviconURL(articleURL string) string {
	u, err := url.Parse(articleURL)
	if err != nil || u.Hostname() == "" {
		return "https://www.google.com/s2/favicons?domain=news.com&sz=32"
	}
	return "https://www.google.com/s2/favicons?domain=" + u.Hostname() + "&sz=32"
}

// truncate shortens s to at most max bytes, appending "..." when it was
// cut. The cut never lands inside a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// parseTime tries the timestamp layouts seen across the signal APIs.
// A zero time is returned when nothing matches.
func parseTime(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
