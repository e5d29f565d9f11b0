package brief

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

func TestRelativeDate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "Recently"},
		{"today", now, "1 day ago"},
		{"yesterday", now.AddDate(0, 0, -1), "1 day ago"},
		{"four days", now.AddDate(0, 0, -4), "4 days ago"},
		{"two weeks", now.AddDate(0, 0, -14), "2 weeks ago"},
		{"old", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "Mar 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relativeDate(tt.t); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildDossierEmptyStates(t *testing.T) {
	got := buildDossier(dossierInput{
		Request:      models.BriefRequest{CompanyName: "Acme", UserIntent: "sell devtools"},
		HiringTrends: "no hiring activity detected",
		NewsTrends:   "no recent news coverage",
	})

	for _, want := range []string{
		"COMPANY: Acme",
		"DOMAIN: Not provided",
		"USER INTENT: sell devtools",
		noNewsContext,
		noJobsContext,
		noTechContext,
		"no hiring activity detected",
		"no recent news coverage",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dossier missing %q", want)
		}
	}
}

func TestBuildDossierSignals(t *testing.T) {
	longDesc := strings.Repeat("x", 400)
	got := buildDossier(dossierInput{
		Request: models.BriefRequest{CompanyName: "Acme", Website: "https://acme.io", UserIntent: "sell devtools"},
		Domain:  "acme.io",
		News: []models.NewsItem{
			{Title: "Acme raises $50M", Source: "TechCrunch", PublishedAt: time.Now(), Description: longDesc},
		},
		Jobs: []models.JobSignal{
			{Title: "SRE", Location: "Remote, Global", PostedDate: time.Now(), Salary: "$150000 - $180000/yearly", Description: "run infra"},
		},
		Tech: []models.TechStackItem{
			{Name: "React", Confidence: models.ConfidenceHigh, Source: models.SourceVerified, Category: "Frontend"},
			{Name: "Python", Confidence: models.ConfidenceMedium, Source: models.SourceJobSignal, Category: "Backend"},
		},
		HiringTrends: "Active hiring: 1 DevOps roles",
		NewsTrends:   "1 recent articles (1 this week) - positive sentiment",
	})

	for _, want := range []string{
		"RECENT NEWS COVERAGE (1 articles):",
		`"Acme raises $50M" (TechCrunch, 1 day ago)`,
		"CURRENT HIRING ACTIVITY (1 positions):",
		"SRE - Remote, Global (Posted: 1 day ago) - $150000 - $180000/yearly",
		"TECHNOLOGY INFRASTRUCTURE (2 technologies):",
		"React (High confidence, Frontend, verified by BuiltWith)",
		"Python (Medium confidence, Backend)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dossier missing %q\n%s", want, got)
		}
	}

	// News descriptions are truncated to keep the dossier bounded.
	if strings.Contains(got, longDesc) {
		t.Error("news description was not truncated")
	}
	if !strings.Contains(got, strings.Repeat("x", newsDescBudget)+"...") {
		t.Error("truncated news description missing ellipsis")
	}
}

func TestTruncateRuneBoundary(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("short strings must pass through, got %q", got)
	}
	for max := 1; max < 8; max++ {
		got := truncate("résumé — notes", max)
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%d) produced invalid UTF-8: %q", max, got)
		}
	}
	if got := truncate("café", 4); got != "caf..." {
		t.Errorf("expected rune-boundary cut, got %q", got)
	}
}
