// Package trends derives one-sentence hiring and news summaries from
// fetched signals. Both extractors are deterministic keyword counters;
// their output feeds the model context and is stored on the brief.
package trends

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// Fixed empty-state sentences. The context builder relies on these so
// the model never sees an ambiguous blank section.
const (
	NoHiringActivity = "no hiring activity detected"
	NoNewsCoverage   = "no recent news coverage"
)

// roleBucket is one department bucket for hiring classification.
type roleBucket struct {
	name     string
	keywords []string
}

// roleBuckets is scanned in order; the summary lists buckets in this
// order as well.
var roleBuckets = []roleBucket{
	{"AI/ML", []string{"ai", "machine learning", "data scientist", "ml engineer"}},
	{"Engineering", []string{"engineer", "developer", "architect", "tech lead"}},
	{"DevOps", []string{"devops", "sre", "infrastructure", "cloud"}},
	{"Product", []string{"product manager", "product owner", "pm"}},
	{"Sales", []string{"sales", "account", "business development"}},
	{"Marketing", []string{"marketing", "growth", "content"}},
}

// sentimentSet is one tone bucket for news classification.
type sentimentSet struct {
	label    string
	keywords []string
}

// sentimentSets is examined in order. On equal counts the first
// examined set wins; the order below is part of the contract.
var sentimentSets = []sentimentSet{
	{"positive", []string{"funding", "raised", "growth", "expansion", "launch", "partnership", "acquisition", "success"}},
	{"negative", []string{"layoffs", "cuts", "decline", "loss", "controversy", "investigation"}},
	{"neutral", []string{"announces", "reports", "updates", "changes"}},
}

// ExtractHiring summarizes job postings into a single sentence:
// counts per department bucket plus the dominant posting location.
func ExtractHiring(jobs []models.JobSignal) string {
	if len(jobs) == 0 {
		return NoHiringActivity
	}

	titles := make([]string, len(jobs))
	for i, j := range jobs {
		titles[i] = strings.ToLower(j.Title)
	}

	var parts []string
	for _, bucket := range roleBuckets {
		count := 0
		for _, title := range titles {
			if containsAny(title, bucket.keywords) {
				count++
			}
		}
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d %s roles", count, bucket.name))
		}
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%d open positions across various departments", len(jobs))
	}

	summary := "Active hiring: " + strings.Join(parts, ", ")
	if top := dominantLocation(jobs); top != "" {
		summary += fmt.Sprintf(" (primarily %s)", top)
	}
	return summary
}

// dominantLocation returns the most common region component of the job
// locations ("City, Region" → "Region", whole string otherwise). Ties
// go to the location seen first.
func dominantLocation(jobs []models.JobSignal) string {
	counts := make(map[string]int)
	var order []string
	for _, j := range jobs {
		key := j.Location
		if parts := strings.SplitN(j.Location, ",", 2); len(parts) == 2 {
			if region := strings.TrimSpace(parts[1]); region != "" {
				key = region
			}
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	top, best := "", 0
	for _, key := range order {
		if counts[key] > best {
			top, best = key, counts[key]
		}
	}
	return top
}

// ExtractNews classifies overall news tone and recency into a single
// sentence: "N recent articles (M this week) - S sentiment".
func ExtractNews(news []models.NewsItem) string {
	if len(news) == 0 {
		return NoNewsCoverage
	}

	headlines := make([]string, len(news))
	for i, n := range news {
		headlines[i] = strings.ToLower(n.Title)
	}
	joined := strings.Join(headlines, " ")

	// First examined set wins ties; see sentimentSets ordering.
	sentiment := "neutral"
	maxCount := 0
	for _, set := range sentimentSets {
		count := 0
		for _, k := range set.keywords {
			if strings.Contains(joined, k) {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			sentiment = set.label
		}
	}

	thisWeek := 0
	for _, n := range news {
		if days := int(time.Since(n.PublishedAt).Hours() / 24); days <= 7 {
			thisWeek++
		}
	}

	return fmt.Sprintf("%d recent articles (%d this week) - %s sentiment", len(news), thisWeek, sentiment)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
