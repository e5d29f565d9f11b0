// Package brief implements the brief-synthesis pipeline: it assembles
// the model dossier from fetched signals, runs the insight generation
// step under a strict JSON contract, and persists the finished Brief.
package brief

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

// Explicit empty-state section text. The model must never receive an
// ambiguous blank field, so empty signal lists render as these strings.
const (
	noNewsContext = "No recent news coverage found in business/tech media"
	noJobsContext = "No recent job postings detected"
	noTechContext = "Technology stack not detected"
)

// Per-item description budgets keep the total dossier size bounded.
const (
	newsDescBudget = 150
	jobDescBudget  = 200
)

// dossierInput carries everything the context builder folds into the
// model context.
type dossierInput struct {
	Request      models.BriefRequest
	Domain       string
	News         []models.NewsItem
	Jobs         []models.JobSignal
	Tech         []models.TechStackItem
	HiringTrends string
	NewsTrends   string
}

// buildDossier renders the bounded intelligence dossier sent to the
// model: request fields, per-item bullet lines for each signal type,
// and the two derived trend sentences.
func buildDossier(in dossierInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "COMPANY: %s\n", in.Request.CompanyName)
	fmt.Fprintf(&b, "DOMAIN: %s\n", orNotProvided(in.Domain))
	fmt.Fprintf(&b, "WEBSITE: %s\n", orNotProvided(in.Request.Website))
	fmt.Fprintf(&b, "USER INTENT: %s\n", in.Request.UserIntent)

	b.WriteString("\n=== REAL-TIME INTELLIGENCE DATA ===\n")

	fmt.Fprintf(&b, "\nRECENT NEWS COVERAGE (%d articles):\n", len(in.News))
	b.WriteString(newsContext(in.News))

	fmt.Fprintf(&b, "\nCURRENT HIRING ACTIVITY (%d positions):\n", len(in.Jobs))
	b.WriteString(jobContext(in.Jobs))

	fmt.Fprintf(&b, "\nTECHNOLOGY INFRASTRUCTURE (%d technologies):\n", len(in.Tech))
	b.WriteString(techContext(in.Tech))

	fmt.Fprintf(&b, "\nHIRING TRENDS ANALYSIS:\n%s\n", in.HiringTrends)
	fmt.Fprintf(&b, "\nNEWS SENTIMENT & TRENDS:\n%s\n", in.NewsTrends)

	return b.String()
}

func newsContext(news []models.NewsItem) string {
	if len(news) == 0 {
		return noNewsContext + "\n"
	}
	var b strings.Builder
	for _, n := range news {
		fmt.Fprintf(&b, "• %q (%s, %s) - %s\n",
			n.Title, n.Source, relativeDate(n.PublishedAt), truncate(n.Description, newsDescBudget))
	}
	return b.String()
}

func jobContext(jobs []models.JobSignal) string {
	if len(jobs) == 0 {
		return noJobsContext + "\n"
	}
	var b strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&b, "• %s - %s (Posted: %s)", j.Title, j.Location, relativeDate(j.PostedDate))
		if j.Salary != "" {
			fmt.Fprintf(&b, " - %s", j.Salary)
		}
		fmt.Fprintf(&b, "\n  Description: %s\n", truncate(j.Description, jobDescBudget))
	}
	return b.String()
}

func techContext(tech []models.TechStackItem) string {
	if len(tech) == 0 {
		return noTechContext + "\n"
	}
	var b strings.Builder
	for _, t := range tech {
		fmt.Fprintf(&b, "• %s (%s confidence, %s", t.Name, t.Confidence, t.Category)
		if t.Source == models.SourceVerified {
			b.WriteString(", verified by BuiltWith")
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// relativeDate renders a timestamp the way an analyst would say it:
// "1 day ago", "4 days ago", "2 weeks ago", or "Jan 2" beyond a month.
// Unknown (zero) timestamps render as "Recently".
func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "Recently"
	}
	days := int(time.Since(t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	switch {
	case days <= 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", (days+6)/7)
	default:
		return t.Format("Jan 2")
	}
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

// truncate cuts s to at most max bytes without splitting a rune.
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
