package signals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func TestJobsFetchNoKey(t *testing.T) {
	f := NewJobsFetcher("", 5*time.Second)
	items, err := f.Fetch(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("keyless fetch must not error, got %v", err)
	}
	if items != nil {
		t.Errorf("keyless fetch must report nothing, got %v", items)
	}
}

func TestJobsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-RapidAPI-Key"); got != "test-key" {
			t.Errorf("missing RapidAPI key header, got %q", got)
		}
		q := r.URL.Query()
		if got := q.Get("query"); got != "Acme jobs" {
			t.Errorf("unexpected query %q", got)
		}
		if got := q.Get("date_posted"); got != "month" {
			t.Errorf("unexpected date_posted %q", got)
		}
		if got := q.Get("employment_types"); got != "FULLTIME" {
			t.Errorf("unexpected employment_types %q", got)
		}
		json.NewEncoder(w).Encode(jsearchResponse{Status: "OK", Data: []jsearchJob{
			{
				JobTitle:          "Senior SRE",
				EmployerName:      "Acme",
				JobCity:           "Austin",
				JobCountry:        "US",
				JobPostedAt:       "2026-08-15T00:00:00Z",
				JobDescription:    strings.Repeat("d", 600),
				JobSalaryPeriod:   "YEAR",
				JobSalaryCurrency: "USD",
				JobMinSalary:      floatPtr(150000),
				JobMaxSalary:      floatPtr(180000),
			},
			{
				JobTitle:     "Product Manager",
				EmployerName: "Acme",
			},
		}})
	}))
	defer srv.Close()

	f := NewJobsFetcher("test-key", 5*time.Second, WithJobsBaseURL(srv.URL))
	items, err := f.Fetch(context.Background(), "Acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(items))
	}

	first := items[0]
	if first.Location != "Austin, US" {
		t.Errorf("unexpected location %q", first.Location)
	}
	if first.Salary != "USD150000-180000 YEAR" {
		t.Errorf("unexpected salary %q", first.Salary)
	}
	if len(first.Description) != 503 {
		t.Errorf("description not truncated to 500+ellipsis, got %d bytes", len(first.Description))
	}

	// Missing city/country default, missing salary fields stay empty.
	second := items[1]
	if second.Location != "Remote, Global" {
		t.Errorf("unexpected default location %q", second.Location)
	}
	if second.Salary != "" {
		t.Errorf("expected empty salary, got %q", second.Salary)
	}
}

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name string
		job  jsearchJob
		want string
	}{
		{"no period", jsearchJob{JobMinSalary: floatPtr(100)}, ""},
		{"no minimum", jsearchJob{JobSalaryPeriod: "YEAR"}, ""},
		{"default currency", jsearchJob{JobSalaryPeriod: "HOUR", JobMinSalary: floatPtr(45)}, "$45 HOUR"},
		{
			"full range",
			jsearchJob{JobSalaryPeriod: "YEAR", JobSalaryCurrency: "€", JobMinSalary: floatPtr(90000), JobMaxSalary: floatPtr(120000)},
			"€90000-120000 YEAR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSalary(tt.job); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJobsFetchCap(t *testing.T) {
	var data []jsearchJob
	for i := 0; i < 30; i++ {
		data = append(data, jsearchJob{JobTitle: "Engineer", EmployerName: "Acme"})
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(jsearchResponse{Status: "OK", Data: data})
	}))
	defer srv.Close()

	f := NewJobsFetcher("test-key", 5*time.Second, WithJobsBaseURL(srv.URL))
	items, err := f.Fetch(context.Background(), "Acme")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != maxJobSignals {
		t.Errorf("expected cap of %d, got %d", maxJobSignals, len(items))
	}
}
