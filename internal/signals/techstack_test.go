package signals

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

func TestTechFetchNoKeyOrDomain(t *testing.T) {
	f := NewTechFetcher("", 5*time.Second)
	if items, err := f.Fetch(context.Background(), "acme.io"); err != nil || items != nil {
		t.Errorf("keyless fetch must be a silent no-op, got %v, %v", items, err)
	}

	f = NewTechFetcher("test-key", 5*time.Second)
	if items, err := f.Fetch(context.Background(), ""); err != nil || items != nil {
		t.Errorf("domainless fetch must be a silent no-op, got %v, %v", items, err)
	}
}

func TestTechFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v21/api.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("KEY") != "test-key" || q.Get("LOOKUP") != "acme.io" {
			t.Errorf("unexpected query %v", q)
		}
		fmt.Fprint(w, `{
			"Results": [{
				"Result": {
					"Paths": [{
						"Technologies": [
							{"Name": "Cloudflare", "Categories": [{"Name": "CDN"}], "FirstDetected": 1577836800000},
							{"Name": "Mystery Tech"}
						]
					}]
				}
			}]
		}`)
	}))
	defer srv.Close()

	f := NewTechFetcher("test-key", 5*time.Second, WithTechBaseURL(srv.URL))
	items, err := f.Fetch(context.Background(), "acme.io")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Name != "Cloudflare" || first.Category != "CDN" {
		t.Errorf("unexpected first item %+v", first)
	}
	if first.Confidence != models.ConfidenceHigh || first.Source != models.SourceVerified {
		t.Errorf("verified items must be High/verified, got %+v", first)
	}
	if first.FirstDetected != "Jan 1, 2020" {
		t.Errorf("unexpected FirstDetected %q", first.FirstDetected)
	}

	second := items[1]
	if second.Category != "Other" {
		t.Errorf("missing category should default to Other, got %q", second.Category)
	}
	if second.FirstDetected != "" {
		t.Errorf("missing timestamp should stay empty, got %q", second.FirstDetected)
	}
}

func TestTechFetchEmptyProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Results": []}`)
	}))
	defer srv.Close()

	f := NewTechFetcher("test-key", 5*time.Second, WithTechBaseURL(srv.URL))
	items, err := f.Fetch(context.Background(), "acme.io")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items for empty profile, got %d", len(items))
	}
}
