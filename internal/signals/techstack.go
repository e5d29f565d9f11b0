package signals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// maxTechItems caps the number of verified technologies kept.
const maxTechItems = 15

// TechFetcher queries the BuiltWith profiling API for the verified
// technology stack of a company domain. Every item it returns carries
// high confidence and the "verified" provenance label.
type TechFetcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// TechOption configures the tech fetcher.
type TechOption func(*TechFetcher)

// WithTechBaseURL overrides the BuiltWith endpoint (used in tests).
func WithTechBaseURL(u string) TechOption {
	return func(f *TechFetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// WithTechHTTPClient sets a custom HTTP client.
func WithTechHTTPClient(c *http.Client) TechOption {
	return func(f *TechFetcher) { f.client = c }
}

// NewTechFetcher creates a tech-verification fetcher.
func NewTechFetcher(apiKey string, timeout time.Duration, opts ...TechOption) *TechFetcher {
	f := &TechFetcher{
		apiKey:  apiKey,
		baseURL: "https://api.builtwith.com",
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns up to 15 verified technologies for the domain. Without
// an API key or a domain there is nothing to look up and the fetcher
// reports an empty result so the heuristic engine can take over.
func (f *TechFetcher) Fetch(ctx context.Context, domain string) ([]models.TechStackItem, error) {
	if f.apiKey == "" || domain == "" {
		return nil, nil
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("KEY", f.apiKey)
	q.Set("LOOKUP", domain)

	body, err := doGet(ctx, f.client, f.baseURL+"/v21/api.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("builtwith: %w", err)
	}

	var payload builtWithResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("builtwith: decode: %w", err)
	}

	items := make([]models.TechStackItem, 0, maxTechItems)
	for _, tech := range payload.technologies() {
		if len(items) >= maxTechItems {
			break
		}
		category := "Other"
		if len(tech.Categories) > 0 && tech.Categories[0].Name != "" {
			category = tech.Categories[0].Name
		}
		item := models.TechStackItem{
			Name:       tech.Name,
			Confidence: models.ConfidenceHigh,
			Source:     models.SourceVerified,
			Category:   category,
		}
		if tech.FirstDetected > 0 {
			item.FirstDetected = time.UnixMilli(tech.FirstDetected).UTC().Format("Jan 2, 2006")
		}
		items = append(items, item)
	}
	return items, nil
}

// builtWithResponse mirrors the deeply nested BuiltWith v21 payload.
type builtWithResponse struct {
	Results []struct {
		Result struct {
			Paths []struct {
				Technologies []builtWithTech `json:"Technologies"`
			} `json:"Paths"`
		} `json:"Result"`
	} `json:"Results"`
}

type builtWithTech struct {
	Name       string `json:"Name"`
	Categories []struct {
		Name string `json:"Name"`
	} `json:"Categories"`
	FirstDetected int64 `json:"FirstDetected"`
}

// technologies flattens Results[0].Result.Paths[0].Technologies,
// the only path the profile lookup populates.
func (r *builtWithResponse) technologies() []builtWithTech {
	if len(r.Results) == 0 || len(r.Results[0].Result.Paths) == 0 {
		return nil
	}
	return r.Results[0].Result.Paths[0].Technologies
}
