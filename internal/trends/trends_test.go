package trends

import (
	"strings"
	"testing"
	"time"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

func TestExtractHiringEmpty(t *testing.T) {
	if got := ExtractHiring(nil); got != NoHiringActivity {
		t.Errorf("expected %q, got %q", NoHiringActivity, got)
	}
}

func TestExtractHiringBuckets(t *testing.T) {
	jobs := []models.JobSignal{
		{Title: "Senior ML Engineer", Location: "Austin, TX"},
		{Title: "Backend Developer", Location: "Remote, Global"},
		{Title: "DevOps Engineer", Location: "Austin, TX"},
		{Title: "Account Executive", Location: "Austin, TX"},
	}

	got := ExtractHiring(jobs)
	if !strings.HasPrefix(got, "Active hiring: ") {
		t.Fatalf("expected active hiring summary, got %q", got)
	}
	// "ML Engineer" hits AI/ML, and all three engineer titles hit Engineering.
	for _, want := range []string{"1 AI/ML roles", "3 Engineering roles", "1 DevOps roles", "1 Sales roles"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
	if !strings.Contains(got, "(primarily TX)") {
		t.Errorf("summary %q missing dominant location", got)
	}
}

func TestExtractHiringBucketOrder(t *testing.T) {
	jobs := []models.JobSignal{
		{Title: "Growth Marketer"},
		{Title: "Data Scientist"},
	}

	got := ExtractHiring(jobs)
	ai := strings.Index(got, "AI/ML")
	mkt := strings.Index(got, "Marketing")
	if ai < 0 || mkt < 0 || ai > mkt {
		t.Errorf("expected AI/ML before Marketing in %q", got)
	}
}

func TestExtractHiringNoBucketMatch(t *testing.T) {
	jobs := []models.JobSignal{
		{Title: "Chef"},
		{Title: "Janitor"},
	}

	want := "2 open positions across various departments"
	if got := ExtractHiring(jobs); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDominantLocationTieBreak(t *testing.T) {
	jobs := []models.JobSignal{
		{Title: "Engineer", Location: "Berlin, Germany"},
		{Title: "Engineer", Location: "Paris, France"},
	}

	// Equal counts: the location seen first wins.
	if got := dominantLocation(jobs); got != "Germany" {
		t.Errorf("expected Germany, got %q", got)
	}
}

func TestExtractNewsEmpty(t *testing.T) {
	if got := ExtractNews(nil); got != NoNewsCoverage {
		t.Errorf("expected %q, got %q", NoNewsCoverage, got)
	}
}

func TestExtractNewsSentiment(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		titles []string
		want   string
	}{
		{
			name:   "positive keywords dominate",
			titles: []string{"Acme raised $50M in funding", "Acme announces expansion"},
			want:   "positive",
		},
		{
			name:   "negative keywords dominate",
			titles: []string{"Acme layoffs continue", "Revenue decline and loss widen", "Acme launch"},
			want:   "negative",
		},
		{
			name:   "no keywords stays neutral",
			titles: []string{"Acme does a thing"},
			want:   "neutral",
		},
		{
			name:   "positive wins ties over negative",
			titles: []string{"Acme funding round amid layoffs"},
			want:   "positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var news []models.NewsItem
			for _, title := range tt.titles {
				news = append(news, models.NewsItem{Title: title, PublishedAt: now})
			}
			got := ExtractNews(news)
			if !strings.HasSuffix(got, tt.want+" sentiment") {
				t.Errorf("expected %s sentiment, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractNewsRecencyCount(t *testing.T) {
	now := time.Now()
	news := []models.NewsItem{
		{Title: "a", PublishedAt: now.AddDate(0, 0, -2)},
		{Title: "b", PublishedAt: now.AddDate(0, 0, -6)},
		{Title: "c", PublishedAt: now.AddDate(0, 0, -20)},
	}

	got := ExtractNews(news)
	if !strings.HasPrefix(got, "3 recent articles (2 this week)") {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestExtractNewsDeterministic(t *testing.T) {
	news := []models.NewsItem{
		{Title: "Acme announces partnership and growth", PublishedAt: time.Now()},
		{Title: "Investigation into Acme cuts", PublishedAt: time.Now()},
	}

	first := ExtractNews(news)
	for i := 0; i < 10; i++ {
		if got := ExtractNews(news); got != first {
			t.Fatalf("non-deterministic output: %q vs %q", first, got)
		}
	}
}
